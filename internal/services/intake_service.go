package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPhoneTaken     = errors.New("a client with this phone number already exists")
	ErrEmailInUse     = errors.New("a client with this email already exists")
	ErrClientNotFound = errors.New("client not found")
)

// IntakeService creates and maintains clients and their vehicle fleet. A
// client, its vehicles and their NEW_LEAD jobs are created as one atomic
// unit; duplicate contact details roll the whole operation back.
type IntakeService struct {
	db *gorm.DB
}

func NewIntakeService(db *gorm.DB) *IntakeService {
	return &IntakeService{db: db}
}

type VehicleInput struct {
	// ID is set on edit for rows that already exist; zero means create.
	ID          uuid.UUID
	Name        string
	Year        string
	PlateNumber string
}

type CreateLeadInput struct {
	FullName    string
	PhoneNumber string
	Email       string
	Address     string
	State       string
	LeadSource  string
	DOB         *time.Time
	Vehicles    []VehicleInput
}

// CreateLead creates the client plus one Vehicle+Job(NEW_LEAD) pair per
// vehicle row that has a name. Rows without a name are silently skipped.
func (s *IntakeService) CreateLead(actorID uuid.UUID, in CreateLeadInput) (*models.Client, error) {
	if in.FullName == "" || in.PhoneNumber == "" {
		return nil, errors.New("full name and phone number are required")
	}

	var client models.Client
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkContactTaken(tx, in.PhoneNumber, in.Email, uuid.Nil); err != nil {
			return err
		}

		client = models.Client{
			ID:          uuid.New(),
			FullName:    in.FullName,
			PhoneNumber: in.PhoneNumber,
			Email:       optional(in.Email),
			Address:     in.Address,
			State:       in.State,
			LeadSource:  in.LeadSource,
			DOB:         in.DOB,
			CreatedByID: &actorID,
		}
		if err := tx.Create(&client).Error; err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		for _, v := range in.Vehicles {
			if v.Name == "" {
				continue
			}
			if err := s.createVehicleWithJob(tx, client.ID, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

type UpdateClientInput struct {
	FullName    string
	PhoneNumber string
	Email       string
	Address     string
	State       string
	LeadSource  string
	DOB         *time.Time
	Vehicles    []VehicleInput
}

// UpdateClient edits the client record and applies per-row create-or-update
// semantics to its vehicle list. Rows added during the edit get a fresh
// NEW_LEAD job like intake does.
func (s *IntakeService) UpdateClient(clientID uuid.UUID, in UpdateClientInput) (*models.Client, error) {
	if in.FullName == "" || in.PhoneNumber == "" {
		return nil, errors.New("full name and phone number are required")
	}

	var client models.Client
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&client, "id = ?", clientID).Error; err != nil {
			return ErrClientNotFound
		}
		if err := s.checkContactTaken(tx, in.PhoneNumber, in.Email, clientID); err != nil {
			return err
		}

		if err := tx.Model(&client).Updates(map[string]interface{}{
			"full_name":    in.FullName,
			"phone_number": in.PhoneNumber,
			"email":        optional(in.Email),
			"address":      in.Address,
			"state":        in.State,
			"lead_source":  in.LeadSource,
			"dob":          in.DOB,
		}).Error; err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		for _, v := range in.Vehicles {
			if v.Name == "" {
				continue
			}
			if v.ID != uuid.Nil {
				if err := tx.Model(&models.Vehicle{}).
					Where("id = ? AND client_id = ?", v.ID, clientID).
					Updates(map[string]interface{}{
						"name":         v.Name,
						"year":         v.Year,
						"plate_number": optional(v.PlateNumber),
					}).Error; err != nil {
					return fmt.Errorf("failed to update vehicle: %w", err)
				}
			} else {
				if err := s.createVehicleWithJob(tx, clientID, v); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// AddVehicle attaches one more vehicle to an existing client and opens its
// job ticket so installers can see it.
func (s *IntakeService) AddVehicle(clientID uuid.UUID, v VehicleInput) (*models.Vehicle, error) {
	if v.Name == "" {
		return nil, errors.New("vehicle name is required")
	}

	var vehicle models.Vehicle
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, "id = ?", clientID).Error; err != nil {
			return ErrClientNotFound
		}

		vehicle = models.Vehicle{
			ID:          uuid.New(),
			ClientID:    clientID,
			Name:        v.Name,
			Year:        v.Year,
			PlateNumber: optional(v.PlateNumber),
		}
		if err := tx.Create(&vehicle).Error; err != nil {
			return fmt.Errorf("failed to create vehicle: %w", err)
		}

		job := models.Job{
			ID:        uuid.New(),
			VehicleID: vehicle.ID,
			Status:    models.StatusNewLead,
		}
		return tx.Create(&job).Error
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// DeleteVehicle removes one vehicle and its jobs.
func (s *IntakeService) DeleteVehicle(vehicleID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", vehicleID).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", vehicleID).Delete(&models.Vehicle{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("vehicle not found")
		}
		return nil
	})
}

// DeleteClient removes a client with its vehicles and jobs (jobs first, then
// vehicles, then the client).
func (s *IntakeService) DeleteClient(clientID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var vehicleIDs []uuid.UUID
		if err := tx.Model(&models.Vehicle{}).
			Where("client_id = ?", clientID).
			Pluck("id", &vehicleIDs).Error; err != nil {
			return err
		}

		if len(vehicleIDs) > 0 {
			if err := tx.Where("vehicle_id IN ?", vehicleIDs).Delete(&models.Job{}).Error; err != nil {
				return err
			}
			if err := tx.Where("client_id = ?", clientID).Delete(&models.Vehicle{}).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", clientID).Delete(&models.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrClientNotFound
		}
		return nil
	})
}

func (s *IntakeService) createVehicleWithJob(tx *gorm.DB, clientID uuid.UUID, v VehicleInput) error {
	vehicle := models.Vehicle{
		ID:          uuid.New(),
		ClientID:    clientID,
		Name:        v.Name,
		Year:        v.Year,
		PlateNumber: optional(v.PlateNumber),
	}
	if err := tx.Create(&vehicle).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	job := models.Job{
		ID:        uuid.New(),
		VehicleID: vehicle.ID,
		Status:    models.StatusNewLead,
	}
	if err := tx.Create(&job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// checkContactTaken surfaces phone/email collisions as field-specific errors
// before any write. excludeID skips the client being edited.
func (s *IntakeService) checkContactTaken(tx *gorm.DB, phone, email string, excludeID uuid.UUID) error {
	var count int64
	q := tx.Model(&models.Client{}).Where("phone_number = ?", phone)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPhoneTaken
	}

	if email != "" {
		count = 0
		q = tx.Model(&models.Client{}).Where("email = ?", email)
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailInUse
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
