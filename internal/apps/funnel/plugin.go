package funnel

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/middleware"
	"github.com/mathaussantos/funipro-backend/internal/models"
)

// Plugin wires the sales funnel under /deals.
type Plugin struct{}

func (p *Plugin) ID() string {
	return "funnel"
}

func (p *Plugin) ModuleKey() string {
	return models.ModuleFunnel
}

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Deal{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewDealService(db)
	handler := NewDealHandler(service)

	// Gates are mounted on the /deals prefix so they never touch other
	// plugins' routes.
	deals := router.Group("/deals",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.ModuleRequired(db, models.ModuleFunnel),
	)

	// Static paths before the :id wildcard.
	deals.Get("/dashboard", handler.Dashboard)
	deals.Get("/archived", middleware.ModuleRequired(db, models.ModuleArchived), handler.ListArchived)

	deals.Get("/", handler.List)
	deals.Post("/", handler.Create)
	deals.Get("/:id", handler.Get)
	deals.Put("/:id", handler.Update)
	deals.Patch("/:id/status", handler.UpdateStatus)
	deals.Post("/:id/archive", handler.Archive)
	deals.Post("/:id/unarchive", handler.Unarchive)
	deals.Delete("/:id", handler.Delete)
}
