// Package store is the persistence port for the journal. Everything the
// analytics package consumes is loaded through here; the engine itself never
// touches the database.
package store

import (
	"context"
	"fmt"
	"time"

	"tradejournal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AppData is a full snapshot of every journal collection.
type AppData struct {
	Vision   []models.Goal        `json:"vision"`
	Journal  []models.Trade       `json:"journal"`
	Playbook []models.Strategy    `json:"playbook"`
	Wallet   []models.Transaction `json:"wallet"`
}

// Store persists journal collections in the local database.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewStore creates a Store on top of an already migrated database.
func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// upsert inserts or fully replaces a record by primary key. Ids are
// client-assigned timestamps, so a plain gorm Save would issue an UPDATE
// for brand-new records and silently write nothing.
func (s *Store) upsert(ctx context.Context, record any) *gorm.DB {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(record)
}

// Load reads every collection into one snapshot.
func (s *Store) Load(ctx context.Context) (AppData, error) {
	var data AppData
	db := s.db.WithContext(ctx)

	if err := db.Order("id").Find(&data.Vision).Error; err != nil {
		return AppData{}, fmt.Errorf("failed to load goals: %w", err)
	}
	if err := db.Order("id").Find(&data.Journal).Error; err != nil {
		return AppData{}, fmt.Errorf("failed to load trades: %w", err)
	}
	if err := db.Order("id").Find(&data.Playbook).Error; err != nil {
		return AppData{}, fmt.Errorf("failed to load strategies: %w", err)
	}
	if err := db.Order("id").Find(&data.Wallet).Error; err != nil {
		return AppData{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return data, nil
}

// Trades returns the journal ordered by entry date.
func (s *Store) Trades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade
	if err := s.db.WithContext(ctx).Order("date, time").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}
	return trades, nil
}

// SaveTrade normalizes and upserts a trade. New records without an id get a
// creation-timestamp id, matching what the frontend assigns.
func (s *Store) SaveTrade(ctx context.Context, trade *models.Trade) error {
	trade.Normalize()
	if trade.ID == 0 {
		trade.ID = time.Now().UnixMilli()
	}
	if err := s.upsert(ctx, trade).Error; err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	s.log.Debug("Saved trade", zap.Int64("id", trade.ID), zap.String("ticker", trade.Ticker))
	return nil
}

// DeleteTrade removes a trade by id. Deleting an unknown id is not an error.
func (s *Store) DeleteTrade(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.Trade{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}

// Transactions returns the wallet ledger ordered by date.
func (s *Store) Transactions(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.WithContext(ctx).Order("date, id").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txs, nil
}

// SaveTransaction upserts a wallet ledger entry.
func (s *Store) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == 0 {
		tx.ID = time.Now().UnixMilli()
	}
	if err := s.upsert(ctx, tx).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a ledger entry by id.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// Goals returns the vision board entries.
func (s *Store) Goals(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.WithContext(ctx).Order("id").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	return goals, nil
}

// SaveGoal upserts a vision board entry.
func (s *Store) SaveGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == 0 {
		goal.ID = time.Now().UnixMilli()
	}
	if err := s.upsert(ctx, goal).Error; err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// DeleteGoal removes a vision board entry by id.
func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.Goal{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// Strategies returns the playbook.
func (s *Store) Strategies(ctx context.Context) ([]models.Strategy, error) {
	var strategies []models.Strategy
	if err := s.db.WithContext(ctx).Order("id").Find(&strategies).Error; err != nil {
		return nil, fmt.Errorf("failed to load strategies: %w", err)
	}
	return strategies, nil
}

// SaveStrategy upserts a playbook entry.
func (s *Store) SaveStrategy(ctx context.Context, strategy *models.Strategy) error {
	if strategy.ID == 0 {
		strategy.ID = time.Now().UnixMilli()
	}
	if err := s.upsert(ctx, strategy).Error; err != nil {
		return fmt.Errorf("failed to save strategy: %w", err)
	}
	return nil
}

// DeleteStrategy removes a playbook entry by id.
func (s *Store) DeleteStrategy(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.Strategy{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete strategy: %w", err)
	}
	return nil
}
