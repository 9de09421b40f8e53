package store

import (
	"context"
	"testing"

	"tradejournal/internal/database"
	"tradejournal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestStore opens a fresh in-memory database per call. The pool is
// pinned to a single connection because every sqlite connection to
// :memory: would otherwise see its own empty database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return NewStore(db, zap.NewNop())
}

func TestSaveAndLoadTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{
		Ticker: "btcusdt", Date: "2024-03-01", Time: "10:00",
		ExitDate: "2024-03-01", ExitTime: "12:00",
		Type: models.TypeSpot, Position: models.PositionLong,
		EntryPrice: 100, ExitPrice: 110, Fee: 2, PnlAmount: 10,
	}
	require.NoError(t, s.SaveTrade(ctx, trade))

	// Store assigns a timestamp id and normalizes on the way in.
	assert.NotZero(t, trade.ID)
	assert.Equal(t, "BTCUSDT", trade.Ticker)

	trades, err := s.Trades(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, trade.ID, trades[0].ID)
	assert.InDelta(t, 8, trades[0].NetPnl(), 1e-9)
}

func TestSaveTradeKeepsClientID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{ID: 1709286000000, Ticker: "ETHUSDT", Date: "2024-03-01",
		Type: models.TypeSpot, Position: models.PositionLong}
	require.NoError(t, s.SaveTrade(ctx, trade))
	assert.Equal(t, int64(1709286000000), trade.ID)

	// Saving again with the same id overwrites instead of duplicating.
	trade.Fee = 5
	require.NoError(t, s.SaveTrade(ctx, trade))
	trades, err := s.Trades(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, 5.0, trades[0].Fee)
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := &models.Trade{Ticker: "BTCUSDT", Date: "2024-03-01",
		Type: models.TypeSpot, Position: models.PositionLong}
	require.NoError(t, s.SaveTrade(ctx, trade))
	require.NoError(t, s.DeleteTrade(ctx, trade.ID))

	trades, err := s.Trades(ctx)
	require.NoError(t, err)
	assert.Empty(t, trades)

	// Unknown ids are a no-op, not an error.
	assert.NoError(t, s.DeleteTrade(ctx, 42))
}

func TestLoadSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTrade(ctx, &models.Trade{Ticker: "BTCUSDT", Date: "2024-01-01",
		Type: models.TypeSpot, Position: models.PositionLong}))
	require.NoError(t, s.SaveTransaction(ctx, &models.Transaction{
		Date: "2024-01-01", Type: models.TransactionDeposit, Amount: 1000}))
	require.NoError(t, s.SaveGoal(ctx, &models.Goal{Title: "First 10k", TargetAmount: 10000}))
	require.NoError(t, s.SaveStrategy(ctx, &models.Strategy{Name: "Breakout"}))

	data, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Journal, 1)
	assert.Len(t, data.Wallet, 1)
	assert.Len(t, data.Vision, 1)
	assert.Len(t, data.Playbook, 1)
}

func TestBackupRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTrade(ctx, &models.Trade{Ticker: "BTCUSDT", Date: "2024-01-01",
		Type: models.TypeSpot, Position: models.PositionLong, PnlAmount: 10, Fee: 1}))
	require.NoError(t, s.SaveTransaction(ctx, &models.Transaction{
		Date: "2024-01-01", Type: models.TransactionDeposit, Amount: 500}))

	path, err := s.WriteBackup(ctx, t.TempDir())
	require.NoError(t, err)
	require.FileExists(t, path)

	restored := newTestStore(t)
	require.NoError(t, restored.RestoreBackup(ctx, path))

	data, err := restored.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, data.Journal, 1)
	assert.Len(t, data.Wallet, 1)
	assert.Equal(t, "BTCUSDT", data.Journal[0].Ticker)
}
