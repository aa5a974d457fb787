// Package service defines the interfaces between the extraction engine and
// its storage collaborators.
package service

import (
	"context"

	"github.com/duescan/duescan/internal/model"
)

// ExtractionCache memoizes whole extraction results keyed by the digest of
// (normalized text, timezone, locale). Implementations: the in-memory cache
// in internal/extract and the SQLite-backed cache in internal/storage.
type ExtractionCache interface {
	// Get returns the cached result for a key. The returned result must be
	// safe for the caller to mutate while preserving the stored entry and
	// its item identifiers.
	Get(ctx context.Context, key string) (*model.ExtractionResult, bool, error)
	// Put stores a result under a key, overwriting any previous entry.
	Put(ctx context.Context, key string, result *model.ExtractionResult) error
	// Clear removes every entry. Counters are preserved.
	Clear(ctx context.Context) error
	// Stats reports hit/miss/size counters.
	Stats(ctx context.Context) (model.CacheStats, error)
	// RecordHit and RecordMiss bump the counters; the service wrapper owns
	// the decision of what counts as a hit or miss (bypassed calls count a
	// miss only when the key is absent, and never a hit).
	RecordHit(ctx context.Context) error
	RecordMiss(ctx context.Context) error
}

// SessionStore persists a named working set of rows and their pending undo
// snapshots so quick fixes survive across process restarts.
type SessionStore interface {
	// SaveResult replaces the session's rows and issues with a fresh
	// extraction result and discards all pending snapshots.
	SaveResult(ctx context.Context, session string, result *model.ExtractionResult) error
	// LoadRows returns the session's current rows in extraction order.
	LoadRows(ctx context.Context, session string) ([]model.Item, error)
	// SaveRows replaces the session's rows, preserving order.
	SaveRows(ctx context.Context, session string, rows []model.Item) error
	// LoadIssues returns the issues recorded by the session's extraction.
	LoadIssues(ctx context.Context, session string) ([]model.Issue, error)
	// LoadSnapshots returns the pending undo snapshots keyed by row ID.
	LoadSnapshots(ctx context.Context, session string) (map[string]model.UndoSnapshot, error)
	// SaveSnapshots replaces the session's pending snapshots.
	SaveSnapshots(ctx context.Context, session string, snapshots map[string]model.UndoSnapshot) error
	// ClearSession drops the session's rows, issues, and snapshots
	// atomically.
	ClearSession(ctx context.Context, session string) error
}
