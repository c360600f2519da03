package sublocation

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/tenant"
)

var (
	ErrRecordNotFound     = errors.New("sublocation record not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidDiscountPct = errors.New("discount percentage must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// List returns the user's records, most recent service first.
func (s *RecordService) List(userID uuid.UUID) ([]Record, error) {
	var records []Record
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Order("service_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RecordService) Get(userID, recordID uuid.UUID) (*Record, error) {
	return s.find(userID, recordID)
}

func (s *RecordService) Create(userID uuid.UUID, req *RecordRequest) (*Record, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	record := Record{
		UserID:         userID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		ThirdPartyName: req.ThirdPartyName,
		ServiceType:    req.ServiceType,
		ServiceDate:    req.ServiceDate,
	}
	applyValues(&record, req)
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *RecordService) Update(userID, recordID uuid.UUID, req *RecordRequest) (*Record, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	record, err := s.find(userID, recordID)
	if err != nil {
		return nil, err
	}
	record.Title = strings.TrimSpace(req.Title)
	record.Description = req.Description
	record.ThirdPartyName = req.ThirdPartyName
	record.ServiceType = req.ServiceType
	record.ServiceDate = req.ServiceDate
	applyValues(record, req)
	if err := s.db.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (s *RecordService) Delete(userID, recordID uuid.UUID) error {
	result := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("id = ?", recordID).
		Delete(&Record{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func validate(req *RecordRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrTitleRequired
	}
	if req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(hundred) {
		return ErrInvalidDiscountPct
	}
	return nil
}

// applyValues recomputes the derived money fields from their inputs.
func applyValues(record *Record, req *RecordRequest) {
	record.ServiceValue = req.ServiceValue
	record.DiscountPercentage = req.DiscountPercentage
	record.DiscountValue = req.ServiceValue.Mul(req.DiscountPercentage).Div(hundred).Round(2)
	record.NetValue = req.ServiceValue.Sub(record.DiscountValue)
}

func (s *RecordService) find(userID, recordID uuid.UUID) (*Record, error) {
	var record Record
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("id = ?", recordID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
