package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is one customer account. A client owns vehicles; each vehicle
// carries its own job ticket through the pipeline.
type Client struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FullName    string     `gorm:"size:120;not null" json:"full_name"`
	PhoneNumber string     `gorm:"size:30;not null;uniqueIndex" json:"phone_number"`
	Email       *string    `gorm:"size:255;uniqueIndex" json:"email"`
	Address     string     `gorm:"size:255" json:"address"`
	State       string     `gorm:"size:60" json:"state"`
	LeadSource  string     `gorm:"size:60" json:"lead_source"`
	DOB         *time.Time `json:"dob"`
	CreatedByID *uuid.UUID `gorm:"type:uuid;index" json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	CreatedBy *User     `gorm:"foreignKey:CreatedByID" json:"-"`
	Vehicles  []Vehicle `gorm:"foreignKey:ClientID" json:"vehicles,omitempty"`
}
