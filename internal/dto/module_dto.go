package dto

import "github.com/google/uuid"

type ModuleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Key         string    `json:"key"`
}

type UpdateUserModulesRequest struct {
	ModuleIDs []uuid.UUID `json:"moduleIds"`
}
