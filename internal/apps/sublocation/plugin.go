package sublocation

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/middleware"
	"github.com/mathaussantos/funipro-backend/internal/models"
)

// Plugin wires sub-leasing records under /sublocation.
type Plugin struct{}

func (p *Plugin) ID() string {
	return "sublocation"
}

func (p *Plugin) ModuleKey() string {
	return models.ModuleSubLocation
}

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Record{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewRecordService(db)
	handler := NewRecordHandler(service)

	records := router.Group("/sublocation",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.ModuleRequired(db, models.ModuleSubLocation),
	)
	records.Get("/", handler.List)
	records.Post("/", handler.Create)
	records.Get("/:id", handler.Get)
	records.Put("/:id", handler.Update)
	records.Delete("/:id", handler.Delete)
}
