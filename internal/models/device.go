package models

import (
	"time"

	"github.com/google/uuid"
)

// UnitStatus is the stock state of a hardware unit (tracker or SIM).
// Units are never deleted and never return to IN_STOCK automatically.
type UnitStatus string

const (
	UnitInStock   UnitStatus = "IN_STOCK"
	UnitInstalled UnitStatus = "INSTALLED"
)

// Device is one GPS tracker unit. INSTALLED iff exactly one job references it.
type Device struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	IMEI      string     `gorm:"size:30;not null;uniqueIndex" json:"imei"`
	SimNumber string     `gorm:"size:30" json:"sim_number"`
	Type      string     `gorm:"size:40;default:'GPS_TRACKER'" json:"type"`
	Status    UnitStatus `gorm:"size:12;not null;index;default:'IN_STOCK'" json:"status"`
	JobID     *uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
