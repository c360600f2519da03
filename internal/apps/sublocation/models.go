package sublocation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/models"
)

// Record is an owner-scoped sub-leasing/service entry. DiscountValue and
// NetValue are derived on every write from ServiceValue and
// DiscountPercentage, so they can never drift from their inputs.
type Record struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	Title              string          `gorm:"size:255;not null" json:"title"`
	Description        string          `gorm:"size:1000" json:"description,omitempty"`
	ThirdPartyName     string          `gorm:"size:255" json:"thirdPartyName,omitempty"`
	ServiceValue       decimal.Decimal `gorm:"type:decimal(18,2)" json:"serviceValue"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2)" json:"discountPercentage"`
	DiscountValue      decimal.Decimal `gorm:"type:decimal(18,2)" json:"discountValue"`
	NetValue           decimal.Decimal `gorm:"type:decimal(18,2)" json:"netValue"`
	ServiceType        string          `gorm:"size:255" json:"serviceType,omitempty"`
	ServiceDate        *time.Time      `json:"serviceDate"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`

	User models.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecordRequest carries the writable attributes. Client-sent discount/net
// values are ignored; the server recomputes both.
type RecordRequest struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	ThirdPartyName     string          `json:"thirdPartyName"`
	ServiceValue       decimal.Decimal `json:"serviceValue"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	ServiceType        string          `json:"serviceType"`
	ServiceDate        *time.Time      `json:"serviceDate"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
