package inventory

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/middleware"
	"github.com/mathaussantos/funipro-backend/internal/models"
)

// Plugin wires stock keeping under /inventory.
type Plugin struct{}

func (p *Plugin) ID() string {
	return "inventory"
}

func (p *Plugin) ModuleKey() string {
	return models.ModuleInventory
}

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Item{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewItemService(db)
	handler := NewItemHandler(service)

	items := router.Group("/inventory",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.ModuleRequired(db, models.ModuleInventory),
	)
	items.Get("/", handler.List)
	items.Post("/", handler.Create)
	items.Get("/:id", handler.Get)
	items.Put("/:id", handler.Update)
	items.Delete("/:id", handler.Delete)
	items.Post("/:id/entry", handler.Entry)
	items.Post("/:id/exit", handler.Exit)
}
