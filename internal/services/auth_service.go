package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mathaussantos/funipro-backend/internal/apps/funnel"
	"github.com/mathaussantos/funipro-backend/internal/apps/inventory"
	"github.com/mathaussantos/funipro-backend/internal/apps/sublocation"
	"github.com/mathaussantos/funipro-backend/internal/config"
	"github.com/mathaussantos/funipro-backend/internal/dto"
	"github.com/mathaussantos/funipro-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmailRequired      = errors.New("email is required")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a user. The role from the request is only honored when
// allowRole is true (admin-initiated registration); self-service signups are
// always plain users. Module ids, when present, become entitlement grants.
func (s *AuthService) Register(req *dto.RegisterRequest, allowRole bool) (*dto.AuthResponse, error) {
	if req.Email == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < 6 {
		return nil, ErrWeakPassword
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	if allowRole && req.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if len(req.ModuleIDs) == 0 {
			return nil
		}
		var modules []models.Module
		if err := tx.Where("id IN ? AND is_active = ?", req.ModuleIDs, true).Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			grant := models.UserModule{UserID: user.ID, ModuleID: m.ID}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.authResponse(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(&user)
}

// ListUsers returns every account, ordered by email. Admin only.
func (s *AuthService) ListUsers() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("email ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = dto.UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}
	}
	return resp, nil
}

// DeleteUser removes an account and everything it owns. Owned rows are
// purged inside one transaction; the FK constraints on the owned tables are
// a second line of defense, not something this relies on.
func (s *AuthService) DeleteUser(userID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&funnel.Deal{},
			&inventory.Item{},
			&sublocation.Record{},
			&models.UserModule{},
		}
		for _, model := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&user).Error
	})
}

func (s *AuthService) UpdatePassword(userID uuid.UUID, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Model(&user).Update("password", string(hash)).Error
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	modules, err := s.modulesFor(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Modules: modules,
	}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) modulesFor(userID uuid.UUID) ([]dto.ModuleResponse, error) {
	var grants []models.UserModule
	err := s.db.Preload("Module").
		Joins("JOIN modules ON modules.id = user_modules.module_id AND modules.is_active = ?", true).
		Where("user_modules.user_id = ?", userID).
		Find(&grants).Error
	if err != nil {
		return nil, err
	}

	modules := make([]dto.ModuleResponse, len(grants))
	for i, g := range grants {
		modules[i] = dto.ModuleResponse{
			ID:          g.Module.ID,
			Name:        g.Module.Name,
			Description: g.Module.Description,
			Key:         g.Module.Key,
		}
	}
	return modules, nil
}
