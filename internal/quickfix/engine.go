// Package quickfix implements the row correction and one-level undo engine
// over a working copy of extracted items.
package quickfix

import (
	"sync"

	"github.com/duescan/duescan/internal/dates"
	"github.com/duescan/duescan/internal/model"
	"github.com/duescan/duescan/internal/score"
)

// Patch is the set of fields a fix may change. RawDueDate is optional; when
// empty the row keeps its original raw token so later re-parses still work.
type Patch struct {
	DueDate    string
	RawDueDate string
}

// Engine holds the mutable row list and at most one undo snapshot per row.
// Rows move Original → Fixed → Original (via undo); a second fix while a
// snapshot is pending keeps the original snapshot, so undo always restores
// the true pre-fix state.
type Engine struct {
	snapshots map[string]model.UndoSnapshot
	rows      []model.Item
	mu        sync.Mutex
}

// NewEngine creates an engine with no rows.
func NewEngine() *Engine {
	return &Engine{snapshots: make(map[string]model.UndoSnapshot)}
}

// Replace installs a fresh row list and discards all pending snapshots.
func (e *Engine) Replace(rows []model.Item) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = make([]model.Item, len(rows))
	copy(e.rows, rows)
	e.snapshots = make(map[string]model.UndoSnapshot)
}

// Restore installs rows and pending snapshots loaded from a session store.
func (e *Engine) Restore(rows []model.Item, snapshots map[string]model.UndoSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = make([]model.Item, len(rows))
	copy(e.rows, rows)
	e.snapshots = make(map[string]model.UndoSnapshot, len(snapshots))
	for id, snap := range snapshots {
		e.snapshots[id] = snap
	}
}

// Rows returns a copy of the current row list in extraction order.
func (e *Engine) Rows() []model.Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Item, len(e.rows))
	copy(out, e.rows)
	return out
}

// Snapshots returns a copy of the pending undo snapshots keyed by row ID.
func (e *Engine) Snapshots() map[string]model.UndoSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]model.UndoSnapshot, len(e.snapshots))
	for id, snap := range e.snapshots {
		out[id] = snap
	}
	return out
}

// ApplyRowFix corrects one row's due date and recomputes its confidence.
// The patch date is validated (ISO form, supported range) before any state
// changes. An unknown rowID is a silent no-op: rows can legitimately
// disappear between render and action.
func (e *Engine) ApplyRowFix(rowID string, patch Patch) error {
	if err := dates.ValidateManual(patch.DueDate); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(rowID)
	if idx < 0 {
		return nil
	}
	row := &e.rows[idx]

	// First fix since the last undo: capture the pre-fix state. A pending
	// snapshot is never overwritten, so undo returns to the original.
	if _, pending := e.snapshots[rowID]; !pending {
		e.snapshots[rowID] = model.UndoSnapshot{
			RowID:              rowID,
			PreviousDueDate:    row.DueDate,
			PreviousRawDueDate: row.RawDueDate,
			PreviousConfidence: row.Confidence,
		}
	}

	row.DueDate = patch.DueDate
	if patch.RawDueDate != "" {
		row.RawDueDate = patch.RawDueDate
	}
	row.Confidence = score.Confidence(*row)
	return nil
}

// UndoRowFix restores the row's snapshotted state and consumes the
// snapshot. With no pending snapshot (never fixed, or already undone) it is
// a no-op, so a second consecutive undo changes nothing.
func (e *Engine) UndoRowFix(rowID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap, ok := e.snapshots[rowID]
	if !ok {
		return
	}
	idx := e.indexOf(rowID)
	if idx < 0 {
		// Row vanished since the fix; drop the stale snapshot.
		delete(e.snapshots, rowID)
		return
	}

	row := &e.rows[idx]
	row.DueDate = snap.PreviousDueDate
	row.RawDueDate = snap.PreviousRawDueDate
	row.Confidence = snap.PreviousConfidence
	delete(e.snapshots, rowID)
}

// Clear discards all rows and all pending snapshots atomically.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = nil
	e.snapshots = make(map[string]model.UndoSnapshot)
}

func (e *Engine) indexOf(rowID string) int {
	for i := range e.rows {
		if e.rows[i].ID == rowID {
			return i
		}
	}
	return -1
}

// ReparseDate resolves a stored raw date token under a different locale.
// It is pure and stateless; callers feed the result into ApplyRowFix. The
// resolver works from the raw token, never from the already-resolved ISO
// date, since resolving twice would destroy the ambiguity being corrected.
func ReparseDate(rawDueDate, timezone string, target model.DateLocale) (string, error) {
	return dates.Resolve(rawDueDate, target, timezone)
}
