package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mathaussantos/funipro-backend/internal/models"
)

// GetUserID extracts the acting user's UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetAccount returns the user loaded by the RequireUser middleware, or nil
// when it has not run. Authorization checks use this DB-backed account rather
// than trusting token claims.
func GetAccount(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals("account").(*models.User); ok {
		return user
	}
	return nil
}
