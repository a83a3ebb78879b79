package services

import (
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"gorm.io/gorm"
)

// ReportingService serves the read-only projections behind the dashboard
// pages: pipeline lists, the tech/activation/payment queues, status counts
// and client search. It never writes.
type ReportingService struct {
	db *gorm.DB
}

func NewReportingService(db *gorm.DB) *ReportingService {
	return &ReportingService{db: db}
}

// JobsByStatus lists jobs in any of the given statuses, newest first, with
// the vehicle, client, installer and hardware preloaded for display.
func (s *ReportingService) JobsByStatus(statuses ...models.JobStatus) ([]models.Job, error) {
	var jobs []models.Job
	q := s.db.
		Preload("Vehicle").
		Preload("Vehicle.Client").
		Preload("Installer").
		Preload("Device").
		Preload("SimCard").
		Order("created_at DESC")
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Find(&jobs).Error
	return jobs, err
}

func (s *ReportingService) GetJob(jobID uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := s.db.
		Preload("Vehicle").
		Preload("Vehicle.Client").
		Preload("Installer").
		Preload("Device").
		Preload("SimCard").
		First(&job, "id = ?", jobID).Error
	if err != nil {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

// StatusCounts returns job counts grouped by status for the dashboard cards.
func (s *ReportingService) StatusCounts() (map[models.JobStatus]int64, error) {
	type row struct {
		Status models.JobStatus
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.Job{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.JobStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// SearchClients matches clients by name, phone number or one of their
// vehicles' plate numbers.
func (s *ReportingService) SearchClients(query string) ([]models.Client, error) {
	if query == "" {
		return []models.Client{}, nil
	}
	pattern := "%" + query + "%"

	var clients []models.Client
	err := s.db.
		Preload("Vehicles").
		Preload("Vehicles.Jobs").
		Joins("LEFT JOIN vehicles ON vehicles.client_id = clients.id").
		Where("clients.full_name LIKE ? OR clients.phone_number LIKE ? OR vehicles.plate_number LIKE ?",
			pattern, pattern, pattern).
		Group("clients.id").
		Find(&clients).Error
	return clients, err
}

func (s *ReportingService) ListClients() ([]models.Client, error) {
	var clients []models.Client
	err := s.db.
		Preload("Vehicles").
		Preload("Vehicles.Jobs").
		Order("created_at DESC").
		Find(&clients).Error
	return clients, err
}

func (s *ReportingService) GetClient(clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := s.db.
		Preload("Vehicles").
		Preload("Vehicles.Jobs", func(db *gorm.DB) *gorm.DB {
			return db.Order("jobs.created_at DESC")
		}).
		First(&client, "id = ?", clientID).Error
	if err != nil {
		return nil, ErrClientNotFound
	}
	return &client, nil
}
