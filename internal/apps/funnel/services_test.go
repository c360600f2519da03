package funnel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathaussantos/funipro-backend/internal/database"
)

func newTestService(t *testing.T) *DealService {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Deal{}))
	return NewDealService(db)
}

func TestCreateDealDefaults(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	deal, err := s.Create(userID, &CreateDealRequest{
		Title: "  Big contract  ",
		Value: dec("1000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Big contract", deal.Title)
	assert.Equal(t, StatusLead, deal.Status)
	assert.Equal(t, PriorityMedium, deal.Priority)
	assert.True(t, deal.GrossValue.Equal(dec("1000")))
	assert.True(t, deal.NetValue.Equal(dec("1000")))
	assert.False(t, deal.IsArchived)
	assert.NotEqual(t, uuid.Nil, deal.ID)
}

func TestCreateDealExplicitRevenue(t *testing.T) {
	s := newTestService(t)

	gross, net := dec("1200"), dec("1080")
	deal, err := s.Create(uuid.New(), &CreateDealRequest{
		Title:      "with revenue",
		Value:      dec("1200"),
		GrossValue: &gross,
		NetValue:   &net,
	})
	require.NoError(t, err)
	assert.True(t, deal.GrossValue.Equal(gross))
	assert.True(t, deal.NetValue.Equal(net))
}

func TestCreateDealValidation(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	_, err := s.Create(userID, &CreateDealRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	longNotes := make([]byte, maxNotesLen+1)
	for i := range longNotes {
		longNotes[i] = 'x'
	}
	_, err = s.Create(userID, &CreateDealRequest{Title: "ok", Notes: string(longNotes)})
	assert.ErrorIs(t, err, ErrNotesTooLong)

	_, err = s.Create(userID, &CreateDealRequest{Title: "ok", Status: DealStatus(9)})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	badPriority := DealPriority(7)
	_, err = s.Create(userID, &CreateDealRequest{Title: "ok", Priority: &badPriority})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	badMethod := PaymentMethod(5)
	_, err = s.Create(userID, &CreateDealRequest{Title: "ok", PaymentMethod: &badMethod})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestUpdateDealPartial(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &CreateDealRequest{
		Title:   "original",
		Company: "Acme",
		Value:   dec("500"),
	})
	require.NoError(t, err)

	newTitle := "renamed"
	newValue := dec("750")
	updated, err := s.Update(userID, created.ID, &UpdateDealRequest{
		Title: &newTitle,
		Value: &newValue,
	})
	require.NoError(t, err)

	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.Value.Equal(dec("750")))
	// Untouched fields survive a partial update.
	assert.Equal(t, "Acme", updated.Company)

	empty := "  "
	_, err = s.Update(userID, created.ID, &UpdateDealRequest{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestUpdateStatus(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &CreateDealRequest{Title: "deal", Value: dec("10")})
	require.NoError(t, err)

	updated, err := s.UpdateStatus(userID, created.ID, StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, updated.Status)

	_, err = s.UpdateStatus(userID, created.ID, DealStatus(-1))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.UpdateStatus(userID, uuid.New(), StatusLead)
	assert.ErrorIs(t, err, ErrDealNotFound)
}

func TestArchiveLifecycle(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &CreateDealRequest{Title: "to archive", Value: dec("10")})
	require.NoError(t, err)

	archived, err := s.SetArchived(userID, created.ID, true)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	require.NotNil(t, archived.ArchivedAt)

	active, err := s.List(userID)
	require.NoError(t, err)
	assert.Empty(t, active)

	stored, err := s.ListArchived(userID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, created.ID, stored[0].ID)

	restored, err := s.SetArchived(userID, created.ID, false)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)
	assert.Nil(t, restored.ArchivedAt)

	active, err = s.List(userID)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestDeleteDeal(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	created, err := s.Create(userID, &CreateDealRequest{Title: "gone", Value: dec("10")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(userID, created.ID))
	assert.ErrorIs(t, s.Delete(userID, created.ID), ErrDealNotFound)
}

func TestDealOwnershipIsolation(t *testing.T) {
	s := newTestService(t)
	owner := uuid.New()
	other := uuid.New()

	created, err := s.Create(owner, &CreateDealRequest{Title: "mine", Value: dec("10")})
	require.NoError(t, err)

	_, err = s.Get(other, created.ID)
	assert.ErrorIs(t, err, ErrDealNotFound)

	err = s.Delete(other, created.ID)
	assert.ErrorIs(t, err, ErrDealNotFound)

	list, err := s.List(other)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDashboardFromStore(t *testing.T) {
	s := newTestService(t)
	userID := uuid.New()

	_, err := s.Create(userID, &CreateDealRequest{Title: "open", Value: dec("100")})
	require.NoError(t, err)
	closed, err := s.Create(userID, &CreateDealRequest{Title: "won", Value: dec("200"), Status: StatusClosed})
	require.NoError(t, err)

	// Archived deals stay out of the dashboard.
	archived, err := s.Create(userID, &CreateDealRequest{Title: "old", Value: dec("999")})
	require.NoError(t, err)
	_, err = s.SetArchived(userID, archived.ID, true)
	require.NoError(t, err)

	dash, err := s.Dashboard(userID)
	require.NoError(t, err)

	assert.Equal(t, 2, dash.TotalDeals)
	assert.Equal(t, 1, dash.ClosedDeals)
	assert.True(t, dash.TotalValue.Equal(dec("300")))
	assert.True(t, dash.ClosedValue.Equal(dec("200")))
	assert.Equal(t, 1, dash.DealsByStatus[StatusClosed].Count)
	assert.Equal(t, closed.ID, dash.DealsByStatus[StatusClosed].Deals[0].ID)
}
