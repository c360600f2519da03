package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/models"
)

func TestSeedModulesIdempotent(t *testing.T) {
	db, err := OpenTest()
	require.NoError(t, err)

	cfg := &config.Config{}
	require.NoError(t, Seed(db, cfg))
	require.NoError(t, Seed(db, cfg))

	var count int64
	require.NoError(t, db.Model(&models.Module{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultModules)), count)

	var funnel models.Module
	require.NoError(t, db.Where("key = ?", models.ModuleFunnel).First(&funnel).Error)
	assert.True(t, funnel.IsActive)

	// No admin credentials configured, no admin account.
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestSeedAdminWithAllGrants(t *testing.T) {
	db, err := OpenTest()
	require.NoError(t, err)

	cfg := &config.Config{AdminEmail: "admin@example.com", AdminPassword: "changeme"}
	require.NoError(t, Seed(db, cfg))

	var admin models.User
	require.NoError(t, db.Where("email = ?", cfg.AdminEmail).First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(cfg.AdminPassword)))

	var grants int64
	require.NoError(t, db.Model(&models.UserModule{}).Where("user_id = ?", admin.ID).Count(&grants).Error)
	assert.Equal(t, int64(len(defaultModules)), grants)

	// Reseeding never duplicates the account.
	require.NoError(t, Seed(db, cfg))
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}
