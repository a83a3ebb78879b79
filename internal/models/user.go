package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the staff role. ADMIN bypasses module access checks entirely.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleCSR         Role = "CSR"
	RoleInstaller   Role = "INSTALLER"
	RoleTechSupport Role = "TECH_SUPPORT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCSR, RoleInstaller, RoleTechSupport:
		return true
	}
	return false
}

// Module identifiers used for per-user access control (accessibleModules).
const (
	ModuleLeads      = "leads"
	ModuleClients    = "clients"
	ModuleInstaller  = "installer"
	ModuleInventory  = "inventory"
	ModuleTech       = "tech"
	ModuleActivation = "activation"
	ModulePayments   = "payments"
	ModuleUsers      = "users"
)

var AllModules = []string{
	ModuleLeads, ModuleClients, ModuleInstaller, ModuleInventory,
	ModuleTech, ModuleActivation, ModulePayments, ModuleUsers,
}

// User is a staff account (sales, installer, tech support or admin).
type User struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FullName          string         `gorm:"size:120;not null" json:"full_name"`
	Email             string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password          string         `gorm:"not null" json:"-"`
	Role              Role           `gorm:"size:20;not null;default:'CSR'" json:"role"`
	AccessibleModules datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"accessible_modules"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
