package funnel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/models"
)

// DealStatus is an ordered pipeline stage, stored and transmitted as a small
// integer for compatibility with the existing SPA.
type DealStatus int

const (
	StatusLead DealStatus = iota
	StatusQualified
	StatusProposal
	StatusNegotiation
	StatusClosed
)

// AllStatuses in pipeline order. The dashboard emits one bucket per status
// even when empty.
var AllStatuses = []DealStatus{
	StatusLead, StatusQualified, StatusProposal, StatusNegotiation, StatusClosed,
}

func (s DealStatus) Valid() bool {
	return s >= StatusLead && s <= StatusClosed
}

type DealPriority int

const (
	PriorityLow DealPriority = iota
	PriorityMedium
	PriorityHigh
)

func (p DealPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

type PaymentMethod int

const (
	PaymentCard PaymentMethod = iota
	PaymentPix
	PaymentBoleto
	PaymentCash
)

func (m PaymentMethod) Valid() bool {
	return m >= PaymentCard && m <= PaymentCash
}

// String returns the method name the SPA's payment chart keys on
// ("Cartao", "Pix", ...). Changing these strings breaks the frontend.
func (m PaymentMethod) String() string {
	switch m {
	case PaymentCard:
		return "Cartao"
	case PaymentPix:
		return "Pix"
	case PaymentBoleto:
		return "Boleto"
	case PaymentCash:
		return "Dinheiro"
	}
	return "Outros"
}

// Deal is a sales opportunity tracked through the pipeline.
type Deal struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	Title             string          `gorm:"size:255;not null" json:"title"`
	Company           string          `gorm:"size:255" json:"company,omitempty"`
	ContactName       string          `gorm:"size:255" json:"contactName,omitempty"`
	Email             string          `gorm:"size:255" json:"email,omitempty"`
	Phone             string          `gorm:"size:50" json:"phone,omitempty"`
	Value             decimal.Decimal `gorm:"type:decimal(18,2)" json:"value"`
	GrossValue        decimal.Decimal `gorm:"type:decimal(18,2)" json:"grossValue"`
	NetValue          decimal.Decimal `gorm:"type:decimal(18,2)" json:"netValue"`
	Status            DealStatus      `gorm:"not null;default:0;index" json:"status"`
	Priority          DealPriority    `gorm:"not null;default:1" json:"priority"`
	PaymentMethod     *PaymentMethod  `json:"paymentMethod"`
	ExpectedCloseDate *time.Time      `json:"expectedCloseDate"`
	PaymentDate       *time.Time      `json:"paymentDate"`
	Birthday          *time.Time      `json:"birthday"`
	Notes             string          `gorm:"size:2000" json:"notes,omitempty"`
	IsArchived        bool            `gorm:"not null;default:false;index" json:"isArchived"`
	ArchivedAt        *time.Time      `json:"archivedAt"`
	CreatedAt         time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`

	User models.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// --- DTOs ---

type CreateDealRequest struct {
	Title             string           `json:"title"`
	Company           string           `json:"company"`
	ContactName       string           `json:"contactName"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	Value             decimal.Decimal  `json:"value"`
	GrossValue        *decimal.Decimal `json:"grossValue"`
	NetValue          *decimal.Decimal `json:"netValue"`
	Status            DealStatus       `json:"status"`
	Priority          *DealPriority    `json:"priority"`
	PaymentMethod     *PaymentMethod   `json:"paymentMethod"`
	ExpectedCloseDate *time.Time       `json:"expectedCloseDate"`
	PaymentDate       *time.Time       `json:"paymentDate"`
	Birthday          *time.Time       `json:"birthday"`
	Notes             string           `json:"notes"`
}

// UpdateDealRequest uses a pointer per mutable attribute: nil leaves the
// field unchanged, a sent value overwrites it.
type UpdateDealRequest struct {
	Title             *string          `json:"title"`
	Company           *string          `json:"company"`
	ContactName       *string          `json:"contactName"`
	Email             *string          `json:"email"`
	Phone             *string          `json:"phone"`
	Value             *decimal.Decimal `json:"value"`
	GrossValue        *decimal.Decimal `json:"grossValue"`
	NetValue          *decimal.Decimal `json:"netValue"`
	Status            *DealStatus      `json:"status"`
	Priority          *DealPriority    `json:"priority"`
	PaymentMethod     *PaymentMethod   `json:"paymentMethod"`
	ExpectedCloseDate *time.Time       `json:"expectedCloseDate"`
	PaymentDate       *time.Time       `json:"paymentDate"`
	Birthday          *time.Time       `json:"birthday"`
	Notes             *string          `json:"notes"`
}

type UpdateStatusRequest struct {
	Status *DealStatus `json:"status"`
}

type DealResponse struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Company           string          `json:"company,omitempty"`
	ContactName       string          `json:"contactName,omitempty"`
	Email             string          `json:"email,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Value             decimal.Decimal `json:"value"`
	GrossValue        decimal.Decimal `json:"grossValue"`
	NetValue          decimal.Decimal `json:"netValue"`
	Status            DealStatus      `json:"status"`
	Priority          DealPriority    `json:"priority"`
	PaymentMethod     *PaymentMethod  `json:"paymentMethod"`
	ExpectedCloseDate *time.Time      `json:"expectedCloseDate"`
	PaymentDate       *time.Time      `json:"paymentDate"`
	Birthday          *time.Time      `json:"birthday"`
	Notes             string          `json:"notes,omitempty"`
	IsArchived        bool            `json:"isArchived"`
	ArchivedAt        *time.Time      `json:"archivedAt"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type StatusGroup struct {
	Status DealStatus     `json:"status"`
	Count  int            `json:"count"`
	Deals  []DealResponse `json:"deals"`
}

type MonthlyRevenue struct {
	Year                   int                        `json:"year"`
	Month                  int                        `json:"month"`
	MonthName              string                     `json:"monthName"`
	GrossValue             decimal.Decimal            `json:"grossValue"`
	NetValue               decimal.Decimal            `json:"netValue"`
	TotalDiscounts         decimal.Decimal            `json:"totalDiscounts"`
	TotalDeals             int                        `json:"totalDeals"`
	RevenueByPaymentMethod map[string]decimal.Decimal `json:"revenueByPaymentMethod"`
}

type DashboardResponse struct {
	TotalDeals       int              `json:"totalDeals"`
	ClosedDeals      int              `json:"closedDeals"`
	TotalValue       decimal.Decimal  `json:"totalValue"`
	ClosedValue      decimal.Decimal  `json:"closedValue"`
	TotalGrossValue  decimal.Decimal  `json:"totalGrossValue"`
	TotalNetValue    decimal.Decimal  `json:"totalNetValue"`
	ClosedGrossValue decimal.Decimal  `json:"closedGrossValue"`
	ClosedNetValue   decimal.Decimal  `json:"closedNetValue"`
	DealsByStatus    []StatusGroup    `json:"dealsByStatus"`
	MonthlyRevenues  []MonthlyRevenue `json:"monthlyRevenues"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func mapDealToResponse(d *Deal) DealResponse {
	return DealResponse{
		ID:                d.ID,
		Title:             d.Title,
		Company:           d.Company,
		ContactName:       d.ContactName,
		Email:             d.Email,
		Phone:             d.Phone,
		Value:             d.Value,
		GrossValue:        d.GrossValue,
		NetValue:          d.NetValue,
		Status:            d.Status,
		Priority:          d.Priority,
		PaymentMethod:     d.PaymentMethod,
		ExpectedCloseDate: d.ExpectedCloseDate,
		PaymentDate:       d.PaymentDate,
		Birthday:          d.Birthday,
		Notes:             d.Notes,
		IsArchived:        d.IsArchived,
		ArchivedAt:        d.ArchivedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
