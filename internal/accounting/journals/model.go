package journals

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
	"github.com/ledgerline/ledgerline/internal/accounting/shared"
)

// JournalEntry is one balanced set of postings derived from a voucher.
// Entries are append-only: once persisted they are never edited, and a
// cancellation posts a reversing entry instead.
type JournalEntry struct {
	ID             uuid.UUID
	Number         int64
	Date           time.Time
	SourceKind     mappings.DocumentKind
	SourceID       uuid.UUID
	CounterpartyID string
	Memo           string
	ReversalOf     *uuid.UUID
	CreatedAt      time.Time
	Lines          []Detail
}

// Detail is a single debit or credit posting. Exactly one side is
// non-zero per line.
type Detail struct {
	AccountCode string
	Debit       int64
	Credit      int64
}

// Balance sums the debit and credit columns.
func Balance(lines []Detail) (debit, credit int64) {
	for _, line := range lines {
		debit += line.Debit
		credit += line.Credit
	}
	return debit, credit
}

// CheckBalance verifies debits equal credits. Amounts are integer
// denominated, so the balance tolerance is exact.
func CheckBalance(lines []Detail) error {
	debit, credit := Balance(lines)
	if debit != credit {
		return &shared.UnbalancedEntryError{Delta: debit - credit}
	}
	return nil
}

// Reverse builds the reversing entry for a confirmed entry: same
// accounts and amounts with the debit and credit sides swapped.
func Reverse(entry JournalEntry, date time.Time, memo string) JournalEntry {
	lines := make([]Detail, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		lines = append(lines, Detail{
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
		})
	}
	original := entry.ID
	return JournalEntry{
		Date:           date,
		SourceKind:     entry.SourceKind,
		SourceID:       entry.SourceID,
		CounterpartyID: entry.CounterpartyID,
		Memo:           memo,
		ReversalOf:     &original,
		Lines:          lines,
	}
}
