package statements

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
)

// Repository reads confirmed journal detail rows for statement scopes.
// It only ever reads; the log it consumes is append-only.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// DetailRows returns every confirmed posting against the scoped account
// dated on or before until, in (date, entry number, line) order. The
// counter-account of a line is the largest opposite-side account of the
// same entry.
func (r *Repository) DetailRows(ctx context.Context, scope Scope, until time.Time) ([]DetailRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT je.date,
		       je.number::text,
		       je.source_kind,
		       COALESCE((
		           SELECT jd2.account_code
		           FROM journal_details jd2
		           WHERE jd2.entry_id = jd.entry_id
		             AND jd2.account_code <> jd.account_code
		             AND (CASE WHEN jd.debit > 0 THEN jd2.credit ELSE jd2.debit END) > 0
		           ORDER BY (CASE WHEN jd.debit > 0 THEN jd2.credit ELSE jd2.debit END) DESC, jd2.line_no
		           LIMIT 1
		       ), ''),
		       jd.debit,
		       jd.credit
		FROM journal_details jd
		JOIN journal_entries je ON je.id = jd.entry_id
		WHERE jd.account_code = $1
		  AND je.date <= $2
		  AND ($3 = '' OR je.counterparty_id = $3)
		ORDER BY je.date, je.number, jd.line_no`,
		scope.AccountCode, until, scope.CounterpartyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []DetailRow
	var seq int64
	for rows.Next() {
		var d DetailRow
		var kind string
		if err := rows.Scan(&d.Date, &d.Reference, &kind, &d.CounterAccount, &d.Debit, &d.Credit); err != nil {
			return nil, err
		}
		d.RefKind = mappings.DocumentKind(kind)
		d.Seq = seq
		seq++
		details = append(details, d)
	}
	return details, rows.Err()
}
