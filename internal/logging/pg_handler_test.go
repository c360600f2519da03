package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathaussantos/funipro-backend/internal/database"
	"github.com/mathaussantos/funipro-backend/internal/models"
)

func TestPGHandlerBatchesWarnRecords(t *testing.T) {
	db, err := database.OpenTest()
	require.NoError(t, err)
	h := NewPGHandler(db)
	defer h.Stop()

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	rec := slog.NewRecord(time.Now(), slog.LevelWarn, "stock exit rejected", 0)
	rec.AddAttrs(
		slog.String("request_id", "req-1"),
		slog.String("action", "inventory.exit"),
		slog.Int("attempted", 12),
	)
	require.NoError(t, h.Handle(context.Background(), rec))
	h.flush()

	var logs []models.SystemLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "WARN", logs[0].Level)
	assert.Equal(t, "stock exit rejected", logs[0].Message)
	assert.Equal(t, "req-1", logs[0].RequestID)
	assert.Equal(t, "inventory.exit", logs[0].Action)
	assert.JSONEq(t, `{"attempted":12}`, string(logs[0].Extra))
}

func TestPGHandlerPurgesExpiredEntries(t *testing.T) {
	db, err := database.OpenTest()
	require.NoError(t, err)
	h := NewPGHandler(db)
	defer h.Stop()

	stale := models.SystemLog{ID: uuid.New(), Timestamp: time.Now().AddDate(0, 0, -retentionDays-1), Level: "WARN", Message: "old"}
	fresh := models.SystemLog{ID: uuid.New(), Timestamp: time.Now(), Level: "WARN", Message: "new"}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&fresh).Error)

	h.purgeExpired()

	var remaining []models.SystemLog
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Message)
}

func TestMultiHandlerTees(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	logger := slog.New(m)
	logger.Info("info only")
	logger.Error("both")

	// The info-level target sees both records, the error-level one only
	// the second.
	assert.Contains(t, a.String(), "info only")
	assert.Contains(t, a.String(), "both")
	assert.NotContains(t, b.String(), "info only")
	assert.Contains(t, b.String(), "both")
}
