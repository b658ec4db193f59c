package statements

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/accounting/accounts"
	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
)

// Period bounds a statement query, inclusive on both ends. The opening
// balance of a period equals the closing balance of everything before
// it.
type Period struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

// Scope selects the postings a statement covers: one account, and
// optionally one counter-party for debt ledgers on a shared
// receivable/payable account.
type Scope struct {
	AccountCode    string
	CounterpartyID string
}

// DetailRow is one raw confirmed posting against the scoped account,
// carrying its parent entry's date and reference. Seq preserves
// insertion order for stable same-day ordering.
type DetailRow struct {
	Date           time.Time
	Reference      string
	RefKind        mappings.DocumentKind
	CounterAccount string
	Debit          int64
	Credit         int64
	Seq            int64
}

// LedgerRow is a derived statement row. It is never persisted; every
// query recomputes it from the log.
type LedgerRow struct {
	Date           time.Time
	Reference      string
	RefKind        mappings.DocumentKind
	CounterAccount string
	Debit          int64
	Credit         int64
	Balance        int64
	BalanceDebit   int64
	BalanceCredit  int64
}

// Statement is the result of one ledger query: opening balance, the
// grouped running-balance rows, and the period summary.
type Statement struct {
	Account       accounts.Account
	Period        Period
	Opening       int64
	OpeningDebit  int64
	OpeningCredit int64
	Rows          []LedgerRow
	TotalDebit    int64
	TotalCredit   int64
	Closing       int64
	ClosingDebit  int64
	ClosingCredit int64
}
