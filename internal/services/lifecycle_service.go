package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidTransition = errors.New("this status change is not allowed from the job's current stage")

// LifecycleService owns every pipeline transition apart from claim/release.
// Each operation is one transaction: either all job, hardware and vehicle
// writes commit or none do.
type LifecycleService struct {
	db        *gorm.DB
	inventory *InventoryService
}

func NewLifecycleService(db *gorm.DB, inventory *InventoryService) *LifecycleService {
	return &LifecycleService{db: db, inventory: inventory}
}

// Schedule records an agreed install date. Only unclaimed jobs can be
// scheduled; a claimed job goes through Release first so the installer
// assignment is cleared under its own authorization rules. Re-scheduling is
// allowed.
func (s *LifecycleService) Schedule(jobID uuid.UUID, installDate time.Time) (*models.Job, error) {
	var job models.Job
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return ErrJobNotFound
		}
		if job.Status != models.StatusNewLead && job.Status != models.StatusScheduled {
			return ErrInvalidTransition
		}
		return tx.Model(&job).Updates(map[string]interface{}{
			"status":       models.StatusScheduled,
			"install_date": installDate,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkLost drops a job out of the pipeline. Terminal; a reason is required.
func (s *LifecycleService) MarkLost(jobID uuid.UUID, reason string) (*models.Job, error) {
	if reason == "" {
		return nil, errors.New("a reason is required to mark a lead as lost")
	}

	var job models.Job
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return ErrJobNotFound
		}
		if !models.CanTransition(job.Status, models.StatusLeadLost) {
			return ErrInvalidTransition
		}
		return tx.Model(&job).Updates(map[string]interface{}{
			"status":      models.StatusLeadLost,
			"lost_reason": reason,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

type SubmitInstallationInput struct {
	JobID       uuid.UUID
	DeviceID    uuid.UUID
	SimCardID   uuid.UUID
	PlateNumber string
	VehicleName string
}

// SubmitInstallation is the field hand-off: the installer picked a tracker
// and a SIM from stock and fitted them. Both units are conditionally claimed
// and the job moves IN_PROGRESS -> PENDING_QC in the same transaction, so a
// unit grabbed by a concurrent submission rolls the whole thing back and the
// job stays IN_PROGRESS.
func (s *LifecycleService) SubmitInstallation(in SubmitInstallationInput) (*models.Job, error) {
	if in.DeviceID == uuid.Nil || in.SimCardID == uuid.Nil {
		return nil, errors.New("you must select an IMEI and a SIM card from the inventory")
	}

	var job models.Job
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", in.JobID).Error; err != nil {
			return ErrJobNotFound
		}
		if !models.CanTransition(job.Status, models.StatusPendingQC) {
			return ErrInvalidTransition
		}

		if err := s.inventory.claimDevice(tx, in.DeviceID, job.ID); err != nil {
			return err
		}
		if err := s.inventory.claimSimCard(tx, in.SimCardID, job.ID); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status":       models.StatusPendingQC,
			"device_id":    in.DeviceID,
			"sim_card_id":  in.SimCardID,
			"install_date": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}

		vehicleUpdates := map[string]interface{}{}
		if in.VehicleName != "" {
			vehicleUpdates["name"] = in.VehicleName
		}
		if in.PlateNumber != "" {
			vehicleUpdates["plate_number"] = in.PlateNumber
		}
		if len(vehicleUpdates) > 0 {
			if err := tx.Model(&models.Vehicle{}).
				Where("id = ?", job.VehicleID).
				Updates(vehicleUpdates).Error; err != nil {
				return fmt.Errorf("failed to update vehicle: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

type CompleteConfigurationInput struct {
	JobID         uuid.UUID
	IMEI          string
	SimNumber     string
	PlatformID    string
	InstallerName string
}

// CompleteConfiguration is the tech verification step: confirm (or correct)
// the installed tracker's IMEI/SIM, register it on the tracking platform and
// move the job PENDING_QC -> CONFIGURED. IMEI/SIM collisions with other
// hardware are surfaced per field so the operator can re-prompt; the job is
// untouched on failure.
func (s *LifecycleService) CompleteConfiguration(in CompleteConfigurationInput) (*models.Job, error) {
	if in.IMEI == "" || in.PlatformID == "" {
		return nil, errors.New("IMEI and platform ID are required")
	}

	var job models.Job
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", in.JobID).Error; err != nil {
			return ErrJobNotFound
		}
		if !models.CanTransition(job.Status, models.StatusConfigured) {
			return ErrInvalidTransition
		}

		var dup int64
		q := tx.Model(&models.Device{}).Where("imei = ?", in.IMEI)
		if job.DeviceID != nil {
			q = q.Where("id <> ?", *job.DeviceID)
		}
		if err := q.Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrIMEITaken
		}

		if in.SimNumber != "" {
			dup = 0
			q = tx.Model(&models.Device{}).Where("sim_number = ?", in.SimNumber)
			if job.DeviceID != nil {
				q = q.Where("id <> ?", *job.DeviceID)
			}
			if err := q.Count(&dup).Error; err != nil {
				return err
			}
			if dup > 0 {
				return ErrSIMTaken
			}
		}

		if job.DeviceID != nil {
			if err := tx.Model(&models.Device{}).
				Where("id = ?", *job.DeviceID).
				Updates(map[string]interface{}{
					"imei":       in.IMEI,
					"sim_number": in.SimNumber,
				}).Error; err != nil {
				return fmt.Errorf("failed to update device: %w", err)
			}
		} else {
			// Older flow where the tech registers the hardware directly.
			device := models.Device{
				ID:        uuid.New(),
				IMEI:      in.IMEI,
				SimNumber: in.SimNumber,
				Status:    models.UnitInstalled,
				JobID:     &job.ID,
			}
			if err := tx.Create(&device).Error; err != nil {
				return fmt.Errorf("failed to create device: %w", err)
			}
			if err := tx.Model(&job).Update("device_id", device.ID).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		return tx.Model(&job).Updates(map[string]interface{}{
			"status":             models.StatusConfigured,
			"configuration_date": now,
			"platform_id":        in.PlatformID,
			"installer_name":     in.InstallerName,
			"server_config":      true,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Activate completes onboarding: the client's platform account exists and
// login details were sent. Payment becomes due once the service is live.
func (s *LifecycleService) Activate(jobID uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return ErrJobNotFound
		}
		if !models.CanTransition(job.Status, models.StatusActive) {
			return ErrInvalidTransition
		}

		updates := map[string]interface{}{
			"status":    models.StatusActive,
			"onboarded": true,
		}
		if job.PaymentStatus != models.PaymentPaid {
			updates["payment_status"] = models.PaymentDue
		}
		return tx.Model(&job).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}
