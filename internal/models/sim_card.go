package models

import (
	"time"

	"github.com/google/uuid"
)

// SimCard is one data SIM unit, tracked like a device.
type SimCard struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SimNumber string     `gorm:"size:30;not null;uniqueIndex" json:"sim_number"`
	Network   string     `gorm:"size:40" json:"network"`
	Status    UnitStatus `gorm:"size:12;not null;index;default:'IN_STOCK'" json:"status"`
	JobID     *uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
