package apps

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mathaussantos/funipro-backend/internal/config"
	"gorm.io/gorm"
)

// Plugin defines the interface every feature area must implement.
type Plugin interface {
	// ID returns the unique feature identifier.
	ID() string

	// ModuleKey returns the entitlement key gating this feature's routes.
	ModuleKey() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts feature routes on the given Fiber group. The
	// group is prefixed with /api; the plugin mounts JWT and module
	// entitlement middleware on its own path prefix so other routes stay
	// unaffected.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
