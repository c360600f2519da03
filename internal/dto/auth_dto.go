package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      string      `json:"role,omitempty"`
	ModuleIDs []uuid.UUID `json:"moduleIds,omitempty"`
}

// AuthResponse is returned by login and register. The SPA stores the token
// and gates its sections on the module keys.
type AuthResponse struct {
	Token   string           `json:"token"`
	UserID  uuid.UUID        `json:"userId"`
	Email   string           `json:"email"`
	Role    string           `json:"role"`
	Modules []ModuleResponse `json:"modules"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
