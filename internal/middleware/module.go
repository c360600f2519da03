package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mathaussantos/funipro-backend/internal/dto"
	"github.com/mathaussantos/funipro-backend/internal/models"
	"github.com/mathaussantos/funipro-backend/internal/tenant"
	"gorm.io/gorm"
)

// ModuleRequired gates a route group on a per-user module entitlement.
// Admins pass unconditionally. Must run after RequireUser.
func ModuleRequired(db *gorm.DB, moduleKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := tenant.GetAccount(c)
		if account == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if account.IsAdmin() {
			return c.Next()
		}

		var count int64
		err := db.Model(&models.UserModule{}).
			Joins("JOIN modules ON modules.id = user_modules.module_id").
			Where("user_modules.user_id = ? AND modules.key = ? AND modules.is_active = ?", account.ID, moduleKey, true).
			Count(&count).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		if count == 0 {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Module '" + moduleKey + "' is not enabled for this account",
			})
		}
		return c.Next()
	}
}
