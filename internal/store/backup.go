package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WriteBackup snapshots every collection into a JSON file under dir and
// returns the path. Filenames carry the date plus a random suffix so
// repeated backups on the same day never clobber each other.
func (s *Store) WriteBackup(ctx context.Context, dir string) (string, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("journal-%s-%s.json",
		time.Now().UTC().Format("2006-01-02"), uuid.NewString()[:8])
	path := filepath.Join(dir, name)

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	s.log.Info("Wrote backup",
		zap.String("path", path),
		zap.Int("trades", len(data.Journal)),
		zap.Int("transactions", len(data.Wallet)))
	return path, nil
}

// RestoreBackup loads a JSON snapshot and saves every record it contains.
// Existing records with matching ids are overwritten.
func (s *Store) RestoreBackup(ctx context.Context, path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	var data AppData
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}

	for i := range data.Journal {
		if err := s.SaveTrade(ctx, &data.Journal[i]); err != nil {
			return err
		}
	}
	for i := range data.Wallet {
		if err := s.SaveTransaction(ctx, &data.Wallet[i]); err != nil {
			return err
		}
	}
	for i := range data.Vision {
		if err := s.SaveGoal(ctx, &data.Vision[i]); err != nil {
			return err
		}
	}
	for i := range data.Playbook {
		if err := s.SaveStrategy(ctx, &data.Playbook[i]); err != nil {
			return err
		}
	}
	return nil
}
