package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mathaussantos/funipro-backend/internal/dto"
	"github.com/mathaussantos/funipro-backend/internal/models"
	"github.com/mathaussantos/funipro-backend/internal/tenant"
	"gorm.io/gorm"
)

// RequireUser resolves the token subject against the users table and stores
// the authoritative account in locals. A token whose subject no longer exists
// is rejected here, never silently remapped to another account.
func RequireUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := tenant.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Account no longer exists, please sign in again",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}

		c.Locals("account", &user)
		return c.Next()
	}
}
