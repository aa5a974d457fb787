package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/duescan/duescan/internal/model"
)

// SaveResult replaces the session's rows and issues with a fresh extraction
// result and discards all pending undo snapshots, in one transaction.
func (s *SQLiteStore) SaveResult(ctx context.Context, session string, result *model.ExtractionResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(session, "session"); err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("%w: result", ErrNilParameter)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (name, date_locale) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET date_locale = excluded.date_locale, updated_at = CURRENT_TIMESTAMP`,
		session, string(result.DateLocale)); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	for _, table := range []string{"items", "issues", "snapshots"} {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE session = ?`, table), session); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err = insertItems(ctx, tx, session, result.Items); err != nil {
		return err
	}
	for i, issue := range result.Issues {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO issues (id, session, position, reason, snippet) VALUES (?, ?, ?, ?, ?)`,
			issue.ID, session, i, issue.Reason, issue.Snippet); err != nil {
			return fmt.Errorf("failed to insert issue: %w", err)
		}
	}

	return tx.Commit()
}

// SaveRows replaces the session's rows, preserving order. Pending snapshots
// are left untouched.
func (s *SQLiteStore) SaveRows(ctx context.Context, session string, rows []model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(session, "session"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM items WHERE session = ?`, session); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if err = insertItems(ctx, tx, session, rows); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, session string, items []model.Item) error {
	for i, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (
				id, session, position, provider, installment_no, due_date,
				raw_due_date, amount_cents, currency, autopay, late_fee_cents,
				confidence, amount_found, installment_stated,
				installment_total_known, autopay_stated
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, session, i, string(item.Provider), item.InstallmentNo,
			item.DueDate, item.RawDueDate, item.AmountCents, item.Currency,
			boolToInt(item.Autopay), item.LateFeeCents, item.Confidence,
			boolToInt(item.Signals.AmountFound),
			boolToInt(item.Signals.InstallmentStated),
			boolToInt(item.Signals.InstallmentTotalKnown),
			boolToInt(item.Signals.AutopayStated)); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}
	return nil
}

// LoadRows returns the session's current rows in extraction order.
func (s *SQLiteStore) LoadRows(ctx context.Context, session string) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(session, "session"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, provider, installment_no, due_date, raw_due_date,
		       amount_cents, currency, autopay, late_fee_cents, confidence,
		       amount_found, installment_stated, installment_total_known,
		       autopay_stated
		FROM items WHERE session = ? ORDER BY position`, session)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var provider string
		var autopay, amountFound, instStated, totalKnown, autopayStated int
		if err := rows.Scan(&item.ID, &provider, &item.InstallmentNo,
			&item.DueDate, &item.RawDueDate, &item.AmountCents, &item.Currency,
			&autopay, &item.LateFeeCents, &item.Confidence,
			&amountFound, &instStated, &totalKnown, &autopayStated); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Provider = model.Provider(provider)
		item.Autopay = autopay != 0
		item.Signals = model.Signals{
			AmountFound:           amountFound != 0,
			InstallmentStated:     instStated != 0,
			InstallmentTotalKnown: totalKnown != 0,
			AutopayStated:         autopayStated != 0,
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LoadIssues returns the issues recorded by the session's extraction.
func (s *SQLiteStore) LoadIssues(ctx context.Context, session string) ([]model.Issue, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(session, "session"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reason, snippet FROM issues WHERE session = ? ORDER BY position`, session)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var issues []model.Issue
	for rows.Next() {
		var issue model.Issue
		if err := rows.Scan(&issue.ID, &issue.Reason, &issue.Snippet); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

// LoadSnapshots returns the session's pending undo snapshots keyed by row ID.
func (s *SQLiteStore) LoadSnapshots(ctx context.Context, session string) (map[string]model.UndoSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(session, "session"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT row_id, previous_due_date, previous_raw_due_date, previous_confidence
		FROM snapshots WHERE session = ?`, session)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	snapshots := make(map[string]model.UndoSnapshot)
	for rows.Next() {
		var snap model.UndoSnapshot
		if err := rows.Scan(&snap.RowID, &snap.PreviousDueDate,
			&snap.PreviousRawDueDate, &snap.PreviousConfidence); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots[snap.RowID] = snap
	}
	return snapshots, rows.Err()
}

// SaveSnapshots replaces the session's pending snapshots.
func (s *SQLiteStore) SaveSnapshots(ctx context.Context, session string, snapshots map[string]model.UndoSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(session, "session"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM snapshots WHERE session = ?`, session); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	for _, snap := range snapshots {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO snapshots (session, row_id, previous_due_date, previous_raw_due_date, previous_confidence)
			VALUES (?, ?, ?, ?, ?)`,
			session, snap.RowID, snap.PreviousDueDate, snap.PreviousRawDueDate, snap.PreviousConfidence); err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
	}
	return tx.Commit()
}

// ClearSession drops the session's rows, issues, and snapshots atomically.
func (s *SQLiteStore) ClearSession(ctx context.Context, session string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(session, "session"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"items", "issues", "snapshots"} {
		if _, err = tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE session = ?`, table), session); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, session); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return tx.Commit()
}
