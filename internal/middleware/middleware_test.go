package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/apps/funnel"
	"github.com/mathaussantos/funipro-backend/internal/apps/inventory"
	"github.com/mathaussantos/funipro-backend/internal/apps/sublocation"
	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/database"
	"github.com/mathaussantos/funipro-backend/internal/dto"
	"github.com/mathaussantos/funipro-backend/internal/middleware"
	"github.com/mathaussantos/funipro-backend/internal/models"
	"github.com/mathaussantos/funipro-backend/internal/services"
)

type gateFixture struct {
	app *fiber.App
	db  *gorm.DB
	svc *services.AuthService
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	cfg := &config.Config{JWTSecret: "gate-secret", JWTExpiry: time.Hour}

	app := fiber.New()
	gated := app.Group("/gated",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.ModuleRequired(db, models.ModuleFunnel),
	)
	gated.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	admin := app.Group("/admin",
		middleware.JWTProtected(cfg),
		middleware.RequireUser(db),
		middleware.AdminRequired(),
	)
	admin.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return &gateFixture{app: app, db: db, svc: services.NewAuthService(db, cfg)}
}

func (f *gateFixture) request(t *testing.T, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func (f *gateFixture) register(t *testing.T, email, role string, moduleIDs []uuid.UUID) *dto.AuthResponse {
	t.Helper()
	resp, err := f.svc.Register(&dto.RegisterRequest{
		Email: email, Password: "secret1", Role: role, ModuleIDs: moduleIDs,
	}, true)
	require.NoError(t, err)
	return resp
}

func TestModuleGate(t *testing.T) {
	f := newGateFixture(t)

	funnelModule := models.Module{Name: "Funnel", Key: models.ModuleFunnel, IsActive: true}
	require.NoError(t, f.db.Create(&funnelModule).Error)

	granted := f.register(t, "granted@example.com", models.RoleUser, []uuid.UUID{funnelModule.ID})
	denied := f.register(t, "denied@example.com", models.RoleUser, nil)
	admin := f.register(t, "admin@example.com", models.RoleAdmin, nil)

	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/gated/", ""))
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/gated/", "not-a-token"))
	assert.Equal(t, http.StatusOK, f.request(t, "/gated/", granted.Token))
	assert.Equal(t, http.StatusForbidden, f.request(t, "/gated/", denied.Token))
	// Admins bypass module entitlements.
	assert.Equal(t, http.StatusOK, f.request(t, "/gated/", admin.Token))
}

func TestModuleGateIgnoresDeactivatedModule(t *testing.T) {
	f := newGateFixture(t)

	funnelModule := models.Module{Name: "Funnel", Key: models.ModuleFunnel, IsActive: true}
	require.NoError(t, f.db.Create(&funnelModule).Error)
	granted := f.register(t, "user@example.com", models.RoleUser, []uuid.UUID{funnelModule.ID})

	require.NoError(t, f.db.Model(&funnelModule).Update("is_active", false).Error)

	// The grant still exists but the module itself was switched off.
	assert.Equal(t, http.StatusForbidden, f.request(t, "/gated/", granted.Token))
}

func TestAdminGate(t *testing.T) {
	f := newGateFixture(t)

	user := f.register(t, "user@example.com", models.RoleUser, nil)
	admin := f.register(t, "admin@example.com", models.RoleAdmin, nil)

	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/admin/", ""))
	assert.Equal(t, http.StatusForbidden, f.request(t, "/admin/", user.Token))
	assert.Equal(t, http.StatusOK, f.request(t, "/admin/", admin.Token))
}

func TestGatesRequireLoadedAccount(t *testing.T) {
	f := newGateFixture(t)

	// A route that skips RequireUser leaves no account in context; the
	// gates must refuse rather than fall back to token claims.
	cfg := &config.Config{JWTSecret: "gate-secret", JWTExpiry: time.Hour}
	f.app.Get("/bare-admin", middleware.JWTProtected(cfg), middleware.AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	f.app.Get("/bare-gated", middleware.JWTProtected(cfg), middleware.ModuleRequired(f.db, models.ModuleFunnel), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	admin := f.register(t, "admin@example.com", models.RoleAdmin, nil)
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/bare-admin", admin.Token))
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/bare-gated", admin.Token))
}

func TestDeletedAccountTokenRejected(t *testing.T) {
	f := newGateFixture(t)
	require.NoError(t, f.db.AutoMigrate(&funnel.Deal{}, &inventory.Item{}, &sublocation.Record{}))

	admin := f.register(t, "admin@example.com", models.RoleAdmin, nil)
	require.NoError(t, f.svc.DeleteUser(admin.UserID))

	// A valid token whose subject no longer exists must fail, not fall
	// back to some other account.
	assert.Equal(t, http.StatusUnauthorized, f.request(t, "/admin/", admin.Token))
}
