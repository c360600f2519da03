package funnel

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/tenant"
)

var (
	ErrDealNotFound         = errors.New("deal not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrNotesTooLong         = errors.New("notes must be at most 2000 characters")
	ErrInvalidStatus        = errors.New("invalid deal status")
	ErrInvalidPriority      = errors.New("invalid deal priority")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

const maxNotesLen = 2000

type DealService struct {
	db *gorm.DB
}

func NewDealService(db *gorm.DB) *DealService {
	return &DealService{db: db}
}

// List returns the user's active pipeline, newest first.
func (s *DealService) List(userID uuid.UUID) ([]DealResponse, error) {
	var deals []Deal
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("is_archived = ?", false).
		Order("created_at DESC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return mapDeals(deals), nil
}

// ListArchived returns archived deals, most recently archived first.
func (s *DealService) ListArchived(userID uuid.UUID) ([]DealResponse, error) {
	var deals []Deal
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("is_archived = ?", true).
		Order("archived_at DESC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return mapDeals(deals), nil
}

func (s *DealService) Get(userID, dealID uuid.UUID) (*DealResponse, error) {
	deal, err := s.find(userID, dealID)
	if err != nil {
		return nil, err
	}
	resp := mapDealToResponse(deal)
	return &resp, nil
}

func (s *DealService) Create(userID uuid.UUID, req *CreateDealRequest) (*DealResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(req.Notes) > maxNotesLen {
		return nil, ErrNotesTooLong
	}
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	priority := PriorityMedium
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		priority = *req.Priority
	}
	if req.PaymentMethod != nil && !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	deal := Deal{
		UserID:            userID,
		Title:             title,
		Company:           req.Company,
		ContactName:       req.ContactName,
		Email:             req.Email,
		Phone:             req.Phone,
		Value:             req.Value,
		Status:            req.Status,
		Priority:          priority,
		PaymentMethod:     req.PaymentMethod,
		ExpectedCloseDate: req.ExpectedCloseDate,
		PaymentDate:       req.PaymentDate,
		Birthday:          req.Birthday,
		Notes:             req.Notes,
	}
	// Gross/net default to the deal value so older clients that only send
	// value still produce consistent revenue figures.
	deal.GrossValue = deal.Value
	deal.NetValue = deal.Value
	if req.GrossValue != nil && !req.GrossValue.IsZero() {
		deal.GrossValue = *req.GrossValue
	}
	if req.NetValue != nil && !req.NetValue.IsZero() {
		deal.NetValue = *req.NetValue
	}

	if err := s.db.Create(&deal).Error; err != nil {
		return nil, err
	}
	resp := mapDealToResponse(&deal)
	return &resp, nil
}

func (s *DealService) Update(userID, dealID uuid.UUID, req *UpdateDealRequest) (*DealResponse, error) {
	deal, err := s.find(userID, dealID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		deal.Title = title
	}
	if req.Notes != nil {
		if len(*req.Notes) > maxNotesLen {
			return nil, ErrNotesTooLong
		}
		deal.Notes = *req.Notes
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		deal.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		deal.Priority = *req.Priority
	}
	if req.PaymentMethod != nil {
		if !req.PaymentMethod.Valid() {
			return nil, ErrInvalidPaymentMethod
		}
		deal.PaymentMethod = req.PaymentMethod
	}
	if req.Company != nil {
		deal.Company = *req.Company
	}
	if req.ContactName != nil {
		deal.ContactName = *req.ContactName
	}
	if req.Email != nil {
		deal.Email = *req.Email
	}
	if req.Phone != nil {
		deal.Phone = *req.Phone
	}
	if req.Value != nil {
		deal.Value = *req.Value
	}
	if req.GrossValue != nil {
		deal.GrossValue = *req.GrossValue
	}
	if req.NetValue != nil {
		deal.NetValue = *req.NetValue
	}
	if req.ExpectedCloseDate != nil {
		deal.ExpectedCloseDate = req.ExpectedCloseDate
	}
	if req.PaymentDate != nil {
		deal.PaymentDate = req.PaymentDate
	}
	if req.Birthday != nil {
		deal.Birthday = req.Birthday
	}

	if err := s.db.Save(deal).Error; err != nil {
		return nil, err
	}
	resp := mapDealToResponse(deal)
	return &resp, nil
}

func (s *DealService) UpdateStatus(userID, dealID uuid.UUID, status DealStatus) (*DealResponse, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	deal, err := s.find(userID, dealID)
	if err != nil {
		return nil, err
	}
	deal.Status = status
	if err := s.db.Save(deal).Error; err != nil {
		return nil, err
	}
	resp := mapDealToResponse(deal)
	return &resp, nil
}

// SetArchived flips a deal in or out of the archive, stamping or clearing
// the archive time.
func (s *DealService) SetArchived(userID, dealID uuid.UUID, archived bool) (*DealResponse, error) {
	deal, err := s.find(userID, dealID)
	if err != nil {
		return nil, err
	}
	deal.IsArchived = archived
	if archived {
		now := time.Now().UTC()
		deal.ArchivedAt = &now
	} else {
		deal.ArchivedAt = nil
	}
	err = s.db.Model(deal).Select("is_archived", "archived_at", "updated_at").
		Updates(map[string]interface{}{
			"is_archived": deal.IsArchived,
			"archived_at": deal.ArchivedAt,
			"updated_at":  time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, err
	}
	resp := mapDealToResponse(deal)
	return &resp, nil
}

func (s *DealService) Delete(userID, dealID uuid.UUID) error {
	result := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("id = ?", dealID).
		Delete(&Deal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDealNotFound
	}
	return nil
}

// Dashboard aggregates the user's non-archived deals.
func (s *DealService) Dashboard(userID uuid.UUID) (*DashboardResponse, error) {
	var deals []Deal
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("is_archived = ?", false).
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return BuildDashboard(deals), nil
}

func (s *DealService) find(userID, dealID uuid.UUID) (*Deal, error) {
	var deal Deal
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("id = ?", dealID).
		First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func mapDeals(deals []Deal) []DealResponse {
	out := make([]DealResponse, 0, len(deals))
	for i := range deals {
		out = append(out, mapDealToResponse(&deals[i]))
	}
	return out
}
