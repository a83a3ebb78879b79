package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"gorm.io/gorm"
)

// PaymentService records money collected against a job. Payment collection
// doubles as the final pipeline step: a CONFIGURED job is promoted to ACTIVE
// in the same transaction as the payment fields.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

func (s *PaymentService) RecordPayment(jobID uuid.UUID, amount float64, collector string) (*models.Job, error) {
	if amount <= 0 {
		return nil, errors.New("payment amount must be greater than zero")
	}
	if collector == "" {
		return nil, errors.New("the collector's name is required")
	}

	var job models.Job
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return ErrJobNotFound
		}

		updates := map[string]interface{}{
			"payment_status":    models.PaymentPaid,
			"amount_paid":       amount,
			"payment_collector": collector,
		}
		if models.CanTransition(job.Status, models.StatusActive) {
			updates["status"] = models.StatusActive
		}
		return tx.Model(&job).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}
