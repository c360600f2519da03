package sublocation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathaussantos/funipro-backend/internal/database"
)

func newTestService(t *testing.T) *RecordService {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Record{}))
	return NewRecordService(db)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateComputesDerivedValues(t *testing.T) {
	s := newTestService(t)

	record, err := s.Create(uuid.New(), &RecordRequest{
		Title:              "Warehouse sublease",
		ServiceValue:       dec("1000"),
		DiscountPercentage: dec("10"),
	})
	require.NoError(t, err)

	assert.True(t, record.DiscountValue.Equal(dec("100")), "discount %s", record.DiscountValue)
	assert.True(t, record.NetValue.Equal(dec("900")), "net %s", record.NetValue)
}

func TestCreateRoundsDiscountToCents(t *testing.T) {
	s := newTestService(t)

	record, err := s.Create(uuid.New(), &RecordRequest{
		Title:              "Odd percentage",
		ServiceValue:       dec("99.99"),
		DiscountPercentage: dec("33.33"),
	})
	require.NoError(t, err)

	// 99.99 * 33.33 / 100 = 33.326667, rounded to cents.
	assert.True(t, record.DiscountValue.Equal(dec("33.33")), "discount %s", record.DiscountValue)
	assert.True(t, record.NetValue.Equal(dec("66.66")), "net %s", record.NetValue)
}

func TestCreateValidation(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	_, err := s.Create(userID, &RecordRequest{Title: "  "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = s.Create(userID, &RecordRequest{Title: "ok", DiscountPercentage: dec("-1")})
	assert.ErrorIs(t, err, ErrInvalidDiscountPct)

	_, err = s.Create(userID, &RecordRequest{Title: "ok", DiscountPercentage: dec("100.01")})
	assert.ErrorIs(t, err, ErrInvalidDiscountPct)

	// Boundary percentages are allowed.
	_, err = s.Create(userID, &RecordRequest{Title: "free", ServiceValue: dec("50"), DiscountPercentage: dec("100")})
	assert.NoError(t, err)
	_, err = s.Create(userID, &RecordRequest{Title: "full", ServiceValue: dec("50")})
	assert.NoError(t, err)
}

func TestUpdateRecomputesDerivedValues(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &RecordRequest{
		Title:              "Service",
		ServiceValue:       dec("200"),
		DiscountPercentage: dec("5"),
	})
	require.NoError(t, err)

	updated, err := s.Update(userID, created.ID, &RecordRequest{
		Title:              "Service",
		ServiceValue:       dec("400"),
		DiscountPercentage: dec("25"),
	})
	require.NoError(t, err)

	assert.True(t, updated.DiscountValue.Equal(dec("100")))
	assert.True(t, updated.NetValue.Equal(dec("300")))
}

func TestListOrderedByServiceDate(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	older := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.Create(userID, &RecordRequest{Title: "older", ServiceDate: &older})
	require.NoError(t, err)
	_, err = s.Create(userID, &RecordRequest{Title: "newer", ServiceDate: &newer})
	require.NoError(t, err)

	records, err := s.List(userID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "newer", records[0].Title)
	assert.Equal(t, "older", records[1].Title)
}

func TestRecordOwnershipIsolation(t *testing.T) {
	s := newTestService(t)
	owner := uuid.New()
	other := uuid.New()

	created, err := s.Create(owner, &RecordRequest{Title: "mine"})
	require.NoError(t, err)

	_, err = s.Get(other, created.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.Update(other, created.ID, &RecordRequest{Title: "stolen"})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.Delete(other, created.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
