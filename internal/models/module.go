package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known module keys. The SPA gates its sections on these.
const (
	ModuleFunnel      = "funnel"
	ModuleInventory   = "inventory"
	ModuleReports     = "reports"
	ModuleSubLocation = "sublocation"
	ModuleArchived    = "archived"
)

// Module is a named feature area that can be granted to users.
type Module struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Key         string    `gorm:"size:50;not null;uniqueIndex" json:"key"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UserModule grants a user access to a module. One grant per (user, module).
type UserModule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_modules_user_module" json:"userId"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_modules_user_module" json:"moduleId"`
	CreatedAt time.Time `json:"createdAt"`

	Module Module `gorm:"constraint:OnDelete:CASCADE" json:"module"`
}

func (um *UserModule) BeforeCreate(tx *gorm.DB) error {
	if um.ID == uuid.Nil {
		um.ID = uuid.New()
	}
	return nil
}
