package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is one installation/service ticket for one vehicle. All writes to a
// job's status go through the lifecycle/claim services; nullable columns are
// only meaningful at the stages that set them (device/sim from PENDING_QC,
// installer while claimed).
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Status    JobStatus `gorm:"size:20;not null;index;default:'NEW_LEAD'" json:"status"`

	InstallerID *uuid.UUID `gorm:"type:uuid;index" json:"installer_id"`
	DeviceID    *uuid.UUID `gorm:"type:uuid;index" json:"device_id"`
	SimCardID   *uuid.UUID `gorm:"type:uuid;index" json:"sim_card_id"`

	InstallDate       *time.Time `json:"install_date"`
	ConfigurationDate *time.Time `json:"configuration_date"`
	PlatformID        string     `gorm:"size:60" json:"platform_id"`
	InstallerName     string     `gorm:"size:120" json:"installer_name"`
	Onboarded         bool       `gorm:"not null;default:false" json:"onboarded"`
	ServerConfig      bool       `gorm:"not null;default:false" json:"server_config"`

	PaymentStatus    PaymentStatus `gorm:"size:10;not null;default:'NOT_SET'" json:"payment_status"`
	AmountPaid       float64       `gorm:"not null;default:0" json:"amount_paid"`
	PaymentCollector string        `gorm:"size:120" json:"payment_collector"`

	LostReason *string `gorm:"size:255" json:"lost_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Vehicle   *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Installer *User    `gorm:"foreignKey:InstallerID" json:"installer,omitempty"`
	Device    *Device  `gorm:"foreignKey:DeviceID" json:"device,omitempty"`
	SimCard   *SimCard `gorm:"foreignKey:SimCardID" json:"sim_card,omitempty"`
}
