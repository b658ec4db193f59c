// Package statements replays the confirmed journal log into
// running-balance ledger rows. Building is a pure, repeatable read:
// the same scope and period over an unchanged log yield identical rows.
package statements

import (
	"sort"

	"github.com/ledgerline/ledgerline/internal/accounting/accounts"
)

type groupKey struct {
	year, month, day int
	reference        string
	refKind          string
	counterAccount   string
}

// Build replays detail rows into a statement. Rows may span the whole
// life of the account; everything dated before the period contributes
// to the opening balance, everything inside it becomes a ledger row,
// later rows are ignored.
func Build(account accounts.Account, period Period, rows []DetailRow) Statement {
	var opening int64
	grouped := make(map[groupKey]*LedgerRow)
	order := make(map[groupKey]int64)

	for _, row := range rows {
		if row.Date.Before(period.From) {
			opening += row.Debit - row.Credit
			continue
		}
		if row.Date.After(period.To) {
			continue
		}
		key := groupKey{
			year:           row.Date.Year(),
			month:          int(row.Date.Month()),
			day:            row.Date.Day(),
			reference:      row.Reference,
			refKind:        string(row.RefKind),
			counterAccount: row.CounterAccount,
		}
		// One voucher posting several lines against the same account on
		// the same day collapses into a single display row.
		if existing, ok := grouped[key]; ok {
			existing.Debit += row.Debit
			existing.Credit += row.Credit
			continue
		}
		grouped[key] = &LedgerRow{
			Date:           row.Date,
			Reference:      row.Reference,
			RefKind:        row.RefKind,
			CounterAccount: row.CounterAccount,
			Debit:          row.Debit,
			Credit:         row.Credit,
		}
		order[key] = row.Seq
	}

	keys := make([]groupKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := grouped[keys[i]], grouped[keys[j]]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return order[keys[i]] < order[keys[j]]
	})

	stmt := Statement{
		Account: account,
		Period:  period,
		Opening: opening,
	}
	stmt.OpeningDebit, stmt.OpeningCredit = splitBalance(account, opening)

	balance := opening
	for _, key := range keys {
		row := *grouped[key]
		balance += row.Debit - row.Credit
		row.Balance = balance
		row.BalanceDebit, row.BalanceCredit = splitBalance(account, balance)
		stmt.Rows = append(stmt.Rows, row)
		stmt.TotalDebit += row.Debit
		stmt.TotalCredit += row.Credit
	}

	stmt.Closing = stmt.Opening + stmt.TotalDebit - stmt.TotalCredit
	stmt.ClosingDebit, stmt.ClosingCredit = splitBalance(account, stmt.Closing)
	return stmt
}

// splitBalance presents a signed running balance in the debit or credit
// column according to the account's normal side. A sign flip is a
// legitimate state, e.g. an overpaid customer on a debit-normal
// receivable shows up in the credit column.
func splitBalance(account accounts.Account, balance int64) (debit, credit int64) {
	if account.DebitNormal() {
		if balance >= 0 {
			return balance, 0
		}
		return 0, -balance
	}
	if balance <= 0 {
		return 0, -balance
	}
	return balance, 0
}
