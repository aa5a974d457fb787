package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/duescan/duescan/internal/model"
)

// Get returns the cached extraction result for a key, unmarshaled fresh so
// callers can mutate it freely. Item identifiers are preserved as stored.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*model.ExtractionResult, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, false, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM cache_entries WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cache entry: %w", err)
	}

	var result model.ExtractionResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return &result, true, nil
}

// Put stores a result under a key, overwriting any previous entry.
func (s *SQLiteStore) Put(ctx context.Context, key string, result *model.ExtractionResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("%w: result", ErrNilParameter)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, result) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET result = excluded.result, created_at = CURRENT_TIMESTAMP`,
		key, string(payload)); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Clear removes every cache entry; counters are preserved.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stats reports the persistent hit/miss counters and current entry count.
func (s *SQLiteStore) Stats(ctx context.Context) (model.CacheStats, error) {
	if err := validateContext(ctx); err != nil {
		return model.CacheStats{}, err
	}

	var stats model.CacheStats
	err := s.db.QueryRowContext(ctx, `SELECT hits, misses FROM cache_stats WHERE id = 1`).
		Scan(&stats.Hits, &stats.Misses)
	if err != nil {
		return model.CacheStats{}, fmt.Errorf("failed to query cache stats: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_entries`).Scan(&stats.Size); err != nil {
		return model.CacheStats{}, fmt.Errorf("failed to count cache entries: %w", err)
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRateRaw = float64(stats.Hits) / float64(total)
	}
	return stats, nil
}

// RecordHit increments the persistent hit counter.
func (s *SQLiteStore) RecordHit(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE cache_stats SET hits = hits + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to record cache hit: %w", err)
	}
	return nil
}

// RecordMiss increments the persistent miss counter.
func (s *SQLiteStore) RecordMiss(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE cache_stats SET misses = misses + 1 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to record cache miss: %w", err)
	}
	return nil
}
