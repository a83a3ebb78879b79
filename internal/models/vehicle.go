package models

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle belongs to exactly one client. One active job per vehicle per
// lifecycle cycle; queries take the latest job by creation time.
type Vehicle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Year        string    `gorm:"size:10" json:"year"`
	PlateNumber *string   `gorm:"size:20;uniqueIndex" json:"plate_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Client *Client `gorm:"foreignKey:ClientID" json:"-"`
	Jobs   []Job   `gorm:"foreignKey:VehicleID" json:"jobs,omitempty"`
}
