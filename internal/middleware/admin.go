package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mathaussantos/funipro-backend/internal/dto"
	"github.com/mathaussantos/funipro-backend/internal/tenant"
)

// AdminRequired gates admin-only endpoints on the DB-backed account loaded by
// RequireUser. Must run after RequireUser.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := tenant.GetAccount(c)
		if account == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !account.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
