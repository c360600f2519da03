package database

import (
	"fmt"
	"log/slog"

	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultModules = []models.Module{
	{Name: "Funil de Vendas", Description: "Sales pipeline and deal tracking", Key: models.ModuleFunnel, IsActive: true},
	{Name: "Estoque", Description: "Inventory and stock movements", Key: models.ModuleInventory, IsActive: true},
	{Name: "Relatórios", Description: "Revenue reports", Key: models.ModuleReports, IsActive: true},
	{Name: "Sublocação", Description: "Sub-leasing service records", Key: models.ModuleSubLocation, IsActive: true},
	{Name: "Arquivados", Description: "Archived deals", Key: models.ModuleArchived, IsActive: true},
}

// Seed makes sure the module catalog exists and, when ADMIN_EMAIL is set,
// that a default admin account with every module grant is present.
func Seed(db *gorm.DB, cfg *config.Config) error {
	if err := seedModules(db); err != nil {
		return err
	}
	return seedAdmin(db, cfg)
}

func seedModules(db *gorm.DB) error {
	for _, m := range defaultModules {
		var existing models.Module
		if err := db.Where("key = ?", m.Key).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to seed module %s: %w", m.Key, err)
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Email:    cfg.AdminEmail,
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		var modules []models.Module
		if err := tx.Where("is_active = ?", true).Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			grant := models.UserModule{UserID: admin.ID, ModuleID: m.ID}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}

		slog.Info("default admin seeded", "email", cfg.AdminEmail, "modules", len(modules))
		return nil
	})
}
