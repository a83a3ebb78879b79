package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyClaimed = errors.New("this job was already claimed by someone else")
	ErrUnauthorized   = errors.New("you are not allowed to perform this action")
	ErrJobNotFound    = errors.New("job not found")
)

// ClaimService coordinates installer self-assignment. The claim check and
// write are a single conditional UPDATE, so two installers racing for the
// same job cannot both win.
type ClaimService struct {
	db *gorm.DB
}

func NewClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{db: db}
}

// Claim moves a NEW_LEAD/SCHEDULED job to IN_PROGRESS and records the
// installer. Re-claiming a job you already hold is a no-op.
func (s *ClaimService) Claim(jobID, actorID uuid.UUID) (*models.Job, error) {
	res := s.db.Model(&models.Job{}).
		Where("id = ? AND (status IN ? OR (status = ? AND installer_id = ?))",
			jobID,
			[]models.JobStatus{models.StatusNewLead, models.StatusScheduled},
			models.StatusInProgress, actorID).
		Updates(map[string]interface{}{
			"status":       models.StatusInProgress,
			"installer_id": actorID,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var job models.Job
		if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
			return nil, ErrJobNotFound
		}
		if job.Status == models.StatusInProgress {
			return nil, ErrAlreadyClaimed
		}
		return nil, ErrInvalidTransition
	}

	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Release returns an IN_PROGRESS job to SCHEDULED and clears the installer.
// Only the holder or an admin may release.
func (s *ClaimService) Release(jobID, actorID uuid.UUID, actorRole models.Role) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}

	if job.Status != models.StatusInProgress {
		return nil, ErrInvalidTransition
	}
	if actorRole != models.RoleAdmin && (job.InstallerID == nil || *job.InstallerID != actorID) {
		return nil, ErrUnauthorized
	}

	res := s.db.Model(&models.Job{}).
		Where("id = ? AND status = ?", jobID, models.StatusInProgress).
		Updates(map[string]interface{}{
			"status":       models.StatusScheduled,
			"installer_id": nil,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race with the install submission or another release.
		return nil, ErrInvalidTransition
	}

	// Re-query into a fresh struct: First does not clear the populated
	// InstallerID when the column went back to NULL.
	var released models.Job
	if err := s.db.First(&released, "id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &released, nil
}
