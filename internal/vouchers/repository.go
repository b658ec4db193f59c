package vouchers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/accounting/journals"
	"github.com/ledgerline/ledgerline/internal/accounting/shared"
	"github.com/ledgerline/ledgerline/internal/platform/db"
)

// Repository persists draft vouchers and, inside its transactions, the
// journal rows a confirmation produces.
type Repository interface {
	Create(ctx context.Context, v Voucher) error
	Get(ctx context.Context, id uuid.UUID) (Voucher, error)
	Update(ctx context.Context, v Voucher) error
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the operations available inside one confirm or
// cancel transaction. Status change and journal rows commit together
// or not at all.
type TxRepository interface {
	GetVoucherForUpdate(ctx context.Context, id uuid.UUID) (Voucher, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status, entryID, reversalID *uuid.UUID) error
	NextEntryNumber(ctx context.Context) (int64, error)
	InsertJournalEntry(ctx context.Context, entry journals.JournalEntry) error
	GetJournalEntry(ctx context.Context, id uuid.UUID) (journals.JournalEntry, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *repository) Create(ctx context.Context, v Voucher) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return insertVoucher(ctx, tx, v)
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Voucher, error) {
	return getVoucher(ctx, r.pool, id, false)
}

func (r *repository) Update(ctx context.Context, v Voucher) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE vouchers
			SET number=$2, date=$3, counterparty_id=$4, memo=$5, updated_at=now()
			WHERE id=$1 AND status=$6`,
			v.ID, v.Number, v.Date, v.CounterpartyID, v.Memo, string(StatusDraft))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrConfirmedVoucherEdit
		}
		if _, err := tx.Exec(ctx, `DELETE FROM voucher_lines WHERE voucher_id=$1`, v.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM voucher_overrides WHERE voucher_id=$1`, v.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM voucher_payments WHERE voucher_id=$1`, v.ID); err != nil {
			return err
		}
		return insertVoucherChildren(ctx, tx, v)
	})
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (t *txRepository) GetVoucherForUpdate(ctx context.Context, id uuid.UUID) (Voucher, error) {
	return getVoucher(ctx, t.tx, id, true)
}

func (t *txRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status, entryID, reversalID *uuid.UUID) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE vouchers
		SET status=$2, entry_id=COALESCE($3, entry_id), reversal_id=COALESCE($4, reversal_id), updated_at=now()
		WHERE id=$1`,
		id, string(status), entryID, reversalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrVoucherNotFound
	}
	return nil
}

func (t *txRepository) NextEntryNumber(ctx context.Context) (int64, error) {
	var number int64
	err := t.tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq')`).Scan(&number)
	return number, err
}

func (t *txRepository) InsertJournalEntry(ctx context.Context, entry journals.JournalEntry) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO journal_entries (id, number, date, source_kind, source_id, counterparty_id, memo, reversal_of, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		entry.ID, entry.Number, entry.Date, string(entry.SourceKind), entry.SourceID,
		entry.CounterpartyID, entry.Memo, entry.ReversalOf, entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrEntryExists
		}
		return err
	}
	for idx, line := range entry.Lines {
		if _, err := t.tx.Exec(ctx, `
			INSERT INTO journal_details (entry_id, line_no, account_code, debit, credit)
			VALUES ($1,$2,$3,$4,$5)`,
			entry.ID, idx+1, line.AccountCode, line.Debit, line.Credit); err != nil {
			return err
		}
	}
	return nil
}

func (t *txRepository) GetJournalEntry(ctx context.Context, id uuid.UUID) (journals.JournalEntry, error) {
	var e journals.JournalEntry
	err := t.tx.QueryRow(ctx, `
		SELECT id, number, date, source_kind, source_id, counterparty_id, memo, reversal_of, created_at
		FROM journal_entries WHERE id=$1`, id).
		Scan(&e.ID, &e.Number, &e.Date, &e.SourceKind, &e.SourceID,
			&e.CounterpartyID, &e.Memo, &e.ReversalOf, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return journals.JournalEntry{}, shared.ErrEntryNotFound
		}
		return journals.JournalEntry{}, err
	}
	rows, err := t.tx.Query(ctx, `
		SELECT account_code, debit, credit
		FROM journal_details WHERE entry_id=$1 ORDER BY line_no`, id)
	if err != nil {
		return journals.JournalEntry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var d journals.Detail
		if err := rows.Scan(&d.AccountCode, &d.Debit, &d.Credit); err != nil {
			return journals.JournalEntry{}, err
		}
		e.Lines = append(e.Lines, d)
	}
	return e, rows.Err()
}

func insertVoucher(ctx context.Context, q querier, v Voucher) error {
	_, err := q.Exec(ctx, `
		INSERT INTO vouchers (id, number, kind, date, counterparty_id, memo, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,now(),now())`,
		v.ID, v.Number, string(v.Kind), v.Date, v.CounterpartyID, v.Memo, string(v.Status))
	if err != nil {
		return err
	}
	return insertVoucherChildren(ctx, q, v)
}

func insertVoucherChildren(ctx context.Context, q querier, v Voucher) error {
	for _, line := range v.Lines {
		if _, err := q.Exec(ctx, `
			INSERT INTO voucher_lines (voucher_id, line_no, quantity, unit_price, discount, tax_rate, unit_cost)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			v.ID, line.LineNo, line.Quantity, line.UnitPrice, line.Discount, line.TaxRate, line.UnitCost); err != nil {
			return err
		}
	}
	if v.Payment != nil {
		if _, err := q.Exec(ctx, `
			INSERT INTO voucher_payments (voucher_id, amount, cash_account, counter_account, direction)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (voucher_id) DO UPDATE
			SET amount=EXCLUDED.amount, cash_account=EXCLUDED.cash_account,
			    counter_account=EXCLUDED.counter_account, direction=EXCLUDED.direction`,
			v.ID, v.Payment.Amount, v.Payment.CashAccount, v.Payment.CounterAccount, string(v.Payment.Direction)); err != nil {
			return err
		}
	}
	for idx, line := range v.Override {
		if _, err := q.Exec(ctx, `
			INSERT INTO voucher_overrides (voucher_id, line_no, account_code, debit, credit)
			VALUES ($1,$2,$3,$4,$5)`,
			v.ID, idx+1, line.AccountCode, line.Debit, line.Credit); err != nil {
			return err
		}
	}
	return nil
}

func getVoucher(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (Voucher, error) {
	query := `
		SELECT id, number, kind, date, counterparty_id, memo, status, entry_id, reversal_id, created_at, updated_at
		FROM vouchers WHERE id=$1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var v Voucher
	err := q.QueryRow(ctx, query, id).
		Scan(&v.ID, &v.Number, &v.Kind, &v.Date, &v.CounterpartyID, &v.Memo, &v.Status,
			&v.EntryID, &v.ReversalID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, shared.ErrVoucherNotFound
		}
		return Voucher{}, err
	}

	lines, err := q.Query(ctx, `
		SELECT line_no, quantity, unit_price, discount, tax_rate, unit_cost
		FROM voucher_lines WHERE voucher_id=$1 ORDER BY line_no`, id)
	if err != nil {
		return Voucher{}, err
	}
	defer lines.Close()
	for lines.Next() {
		var item LineItem
		if err := lines.Scan(&item.LineNo, &item.Quantity, &item.UnitPrice,
			&item.Discount, &item.TaxRate, &item.UnitCost); err != nil {
			return Voucher{}, err
		}
		v.Lines = append(v.Lines, item)
	}
	if err := lines.Err(); err != nil {
		return Voucher{}, err
	}

	var payment PaymentDetails
	err = q.QueryRow(ctx, `
		SELECT amount, cash_account, counter_account, direction
		FROM voucher_payments WHERE voucher_id=$1`, id).
		Scan(&payment.Amount, &payment.CashAccount, &payment.CounterAccount, &payment.Direction)
	switch {
	case err == nil:
		v.Payment = &payment
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return Voucher{}, err
	}

	overrides, err := q.Query(ctx, `
		SELECT account_code, debit, credit
		FROM voucher_overrides WHERE voucher_id=$1 ORDER BY line_no`, id)
	if err != nil {
		return Voucher{}, err
	}
	defer overrides.Close()
	for overrides.Next() {
		var d journals.Detail
		if err := overrides.Scan(&d.AccountCode, &d.Debit, &d.Credit); err != nil {
			return Voucher{}, err
		}
		v.Override = append(v.Override, d)
	}
	return v, overrides.Err()
}
