package services

import (
	"github.com/google/uuid"
	"github.com/mathaussantos/funipro-backend/internal/dto"
	"github.com/mathaussantos/funipro-backend/internal/models"
	"gorm.io/gorm"
)

type ModuleService struct {
	db *gorm.DB
}

func NewModuleService(db *gorm.DB) *ModuleService {
	return &ModuleService{db: db}
}

// ListActive returns the active module catalog, ordered by name.
func (s *ModuleService) ListActive() ([]dto.ModuleResponse, error) {
	var modules []models.Module
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&modules).Error; err != nil {
		return nil, err
	}
	return mapModules(modules), nil
}

// ListForUser returns the modules granted to one user.
func (s *ModuleService) ListForUser(userID uuid.UUID) ([]dto.ModuleResponse, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	var modules []models.Module
	err := s.db.
		Joins("JOIN user_modules ON user_modules.module_id = modules.id").
		Where("user_modules.user_id = ?", userID).
		Order("modules.name ASC").
		Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return mapModules(modules), nil
}

// ReplaceForUser swaps a user's grants for the given set in one transaction.
// Ids that are unknown or inactive are ignored rather than rejected, matching
// how the admin UI sends the full checkbox state.
func (s *ModuleService) ReplaceForUser(userID uuid.UUID, moduleIDs []uuid.UUID) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserModule{}).Error; err != nil {
			return err
		}
		if len(moduleIDs) == 0 {
			return nil
		}

		var modules []models.Module
		if err := tx.Where("id IN ? AND is_active = ?", moduleIDs, true).Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			grant := models.UserModule{UserID: userID, ModuleID: m.ID}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ModuleService) requireUser(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}
	return nil
}

func mapModules(modules []models.Module) []dto.ModuleResponse {
	resp := make([]dto.ModuleResponse, len(modules))
	for i, m := range modules {
		resp[i] = dto.ModuleResponse{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Key:         m.Key,
		}
	}
	return resp
}
