package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/models"
)

// Item is an owner-scoped stock-keeping record. MinQuantity is a reorder
// threshold that only drives the low-stock flag, never a hard constraint.
type Item struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"size:1000" json:"description,omitempty"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	MinQuantity int             `gorm:"not null;default:0" json:"minQuantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2)" json:"unitPrice"`
	Category    string          `gorm:"size:255" json:"category,omitempty"`
	Supplier    string          `gorm:"size:255" json:"supplier,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	User models.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type ItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
}

type MovementRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Category    string          `json:"category,omitempty"`
	Supplier    string          `json:"supplier,omitempty"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type MovementResponse struct {
	Message     string `json:"message"`
	NewQuantity int    `json:"newQuantity"`
	LowStock    bool   `json:"lowStock"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func mapItemToResponse(i *Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Quantity:    i.Quantity,
		MinQuantity: i.MinQuantity,
		UnitPrice:   i.UnitPrice,
		Category:    i.Category,
		Supplier:    i.Supplier,
		LowStock:    i.Quantity <= i.MinQuantity,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
