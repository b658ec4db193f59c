package journals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/accounting/shared"
)

// Repository is the read side of the append-only journal log. Writes
// happen only inside the voucher confirmation transaction.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List returns entries newest first, lines included.
func (r *Repository) List(ctx context.Context) ([]JournalEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, number, date, source_kind, source_id, counterparty_id, memo, reversal_of, created_at
		FROM journal_entries ORDER BY number DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.Number, &e.Date, &e.SourceKind, &e.SourceID,
			&e.CounterpartyID, &e.Memo, &e.ReversalOf, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for idx := range entries {
		lines, err := r.lines(ctx, entries[idx].ID)
		if err != nil {
			return nil, err
		}
		entries[idx].Lines = lines
	}
	return entries, nil
}

// Get loads a single entry with its lines.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (JournalEntry, error) {
	var e JournalEntry
	err := r.db.QueryRow(ctx, `
		SELECT id, number, date, source_kind, source_id, counterparty_id, memo, reversal_of, created_at
		FROM journal_entries WHERE id=$1`, id).
		Scan(&e.ID, &e.Number, &e.Date, &e.SourceKind, &e.SourceID,
			&e.CounterpartyID, &e.Memo, &e.ReversalOf, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JournalEntry{}, shared.ErrEntryNotFound
		}
		return JournalEntry{}, err
	}
	e.Lines, err = r.lines(ctx, e.ID)
	if err != nil {
		return JournalEntry{}, err
	}
	return e, nil
}

func (r *Repository) lines(ctx context.Context, entryID uuid.UUID) ([]Detail, error) {
	rows, err := r.db.Query(ctx, `
		SELECT account_code, debit, credit
		FROM journal_details WHERE entry_id=$1 ORDER BY line_no`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(&d.AccountCode, &d.Debit, &d.Credit); err != nil {
			return nil, err
		}
		lines = append(lines, d)
	}
	return lines, rows.Err()
}
