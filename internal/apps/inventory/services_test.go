package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathaussantos/funipro-backend/internal/database"
)

func newTestService(t *testing.T) *ItemService {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Item{}))
	return NewItemService(db)
}

func TestCreateAndListItems(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	_, err := s.Create(userID, &ItemRequest{Name: "Screws", Quantity: 500})
	require.NoError(t, err)
	_, err = s.Create(userID, &ItemRequest{Name: "Bolts", Quantity: 200})
	require.NoError(t, err)

	_, err = s.Create(userID, &ItemRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)

	items, err := s.List(userID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Ordered by name.
	assert.Equal(t, "Bolts", items[0].Name)
	assert.Equal(t, "Screws", items[1].Name)
}

func TestUpdateItemIsFullReplace(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &ItemRequest{
		Name: "Paint", Description: "white", Quantity: 10,
		Category: "supplies", UnitPrice: decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	updated, err := s.Update(userID, created.ID, &ItemRequest{
		Name: "Paint", Quantity: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, updated.Quantity)
	// PUT replaces everything, omitted fields are cleared.
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "", updated.Category)
	assert.True(t, updated.UnitPrice.IsZero())
}

func TestStockEntry(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &ItemRequest{Name: "Cement", Quantity: 5, MinQuantity: 10})
	require.NoError(t, err)

	resp, err := s.Entry(userID, created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, resp.NewQuantity)
	assert.True(t, resp.LowStock)

	resp, err = s.Entry(userID, created.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 28, resp.NewQuantity)
	assert.False(t, resp.LowStock)

	_, err = s.Entry(userID, created.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = s.Entry(userID, created.ID, -5)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestStockExitRejectsNegativeResult(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &ItemRequest{Name: "Sand", Quantity: 10})
	require.NoError(t, err)

	_, err = s.Exit(userID, created.ID, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Quantity left untouched by the rejected exit.
	item, err := s.Get(userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)

	resp, err := s.Exit(userID, created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.NewQuantity)

	_, err = s.Exit(userID, created.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestItemOwnershipIsolation(t *testing.T) {
	s := newTestService(t)
	owner := uuid.New()
	other := uuid.New()

	created, err := s.Create(owner, &ItemRequest{Name: "Private", Quantity: 1})
	require.NoError(t, err)

	_, err = s.Get(other, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = s.Exit(other, created.ID, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)

	err = s.Delete(other, created.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, s.Delete(owner, created.ID))
}
