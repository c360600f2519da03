package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mathaussantos/funipro-backend/internal/tenant"
)

var (
	ErrItemNotFound      = errors.New("inventory item not found")
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock for this exit")
)

type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

func (s *ItemService) List(userID uuid.UUID) ([]ItemResponse, error) {
	var items []Item
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, mapItemToResponse(&items[i]))
	}
	return out, nil
}

func (s *ItemService) Get(userID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.find(userID, itemID)
	if err != nil {
		return nil, err
	}
	resp := mapItemToResponse(item)
	return &resp, nil
}

func (s *ItemService) Create(userID uuid.UUID, req *ItemRequest) (*ItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	item := Item{
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		UnitPrice:   req.UnitPrice,
		Category:    req.Category,
		Supplier:    req.Supplier,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	resp := mapItemToResponse(&item)
	return &resp, nil
}

// Update replaces every editable attribute, matching the PUT semantics the
// SPA relies on.
func (s *ItemService) Update(userID, itemID uuid.UUID, req *ItemRequest) (*ItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	item, err := s.find(userID, itemID)
	if err != nil {
		return nil, err
	}
	item.Name = name
	item.Description = req.Description
	item.Quantity = req.Quantity
	item.MinQuantity = req.MinQuantity
	item.UnitPrice = req.UnitPrice
	item.Category = req.Category
	item.Supplier = req.Supplier
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	resp := mapItemToResponse(item)
	return &resp, nil
}

func (s *ItemService) Delete(userID, itemID uuid.UUID) error {
	result := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("id = ?", itemID).
		Delete(&Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Entry adds stock to an item.
func (s *ItemService) Entry(userID, itemID uuid.UUID, quantity int) (*MovementResponse, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.find(userID, itemID)
	if err != nil {
		return nil, err
	}
	err = s.db.Model(item).Updates(map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", quantity),
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, err
	}
	item.Quantity += quantity
	return movementResponse("Stock entry recorded", item), nil
}

// Exit subtracts stock and refuses to let the quantity go negative. The
// quantity guard is repeated in the UPDATE so two concurrent exits cannot
// drive the count below zero.
func (s *ItemService) Exit(userID, itemID uuid.UUID, quantity int) (*MovementResponse, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.find(userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.Quantity < quantity {
		return nil, ErrInsufficientStock
	}
	result := s.db.Model(item).
		Where("quantity >= ?", quantity).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", quantity),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInsufficientStock
	}
	item.Quantity -= quantity
	return movementResponse("Stock exit recorded", item), nil
}

func (s *ItemService) find(userID, itemID uuid.UUID) (*Item, error) {
	var item Item
	err := s.db.Scopes(tenant.OwnedBy(userID)).
		Where("id = ?", itemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func movementResponse(message string, item *Item) *MovementResponse {
	return &MovementResponse{
		Message:     message,
		NewQuantity: item.Quantity,
		LowStock:    item.Quantity <= item.MinQuantity,
	}
}
