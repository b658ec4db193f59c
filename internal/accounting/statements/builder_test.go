package statements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/accounting/accounts"
	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
)

var (
	cashAccount = accounts.Account{Code: "1111", Name: "Cash on hand", Type: accounts.TypeAsset, NormalSide: accounts.SideDebit}
	receivables = accounts.Account{Code: "1310", Name: "Trade receivables", Type: accounts.TypeAsset, NormalSide: accounts.SideDebit}
	payables    = accounts.Account{Code: "3310", Name: "Trade payables", Type: accounts.TypeLiability, NormalSide: accounts.SideCredit}
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func june() Period {
	return Period{From: day(1), To: day(30)}
}

func TestBuildGroupsDuplicateRows(t *testing.T) {
	rows := []DetailRow{
		{Date: day(5), Reference: "42", RefKind: mappings.KindSale, CounterAccount: "5110", Debit: 600000, Seq: 0},
		{Date: day(5), Reference: "42", RefKind: mappings.KindSale, CounterAccount: "5110", Debit: 400000, Seq: 1},
	}
	stmt := Build(receivables, june(), rows)
	require.Len(t, stmt.Rows, 1)
	require.Equal(t, int64(1000000), stmt.Rows[0].Debit)
	require.Equal(t, int64(1000000), stmt.Rows[0].Balance)
}

func TestBuildKeepsDistinctReferencesApart(t *testing.T) {
	rows := []DetailRow{
		{Date: day(5), Reference: "42", RefKind: mappings.KindSale, CounterAccount: "5110", Debit: 600000, Seq: 0},
		{Date: day(5), Reference: "43", RefKind: mappings.KindSale, CounterAccount: "5110", Debit: 400000, Seq: 1},
	}
	stmt := Build(receivables, june(), rows)
	require.Len(t, stmt.Rows, 2)
}

func TestBuildOrdersChronologicallyWithStableTies(t *testing.T) {
	rows := []DetailRow{
		{Date: day(20), Reference: "90", RefKind: mappings.KindSale, Debit: 100, Seq: 3},
		{Date: day(5), Reference: "88", RefKind: mappings.KindSale, Debit: 200, Seq: 1},
		{Date: day(5), Reference: "87", RefKind: mappings.KindSale, Debit: 300, Seq: 0},
		{Date: day(5), Reference: "89", RefKind: mappings.KindSale, Debit: 400, Seq: 2},
	}
	stmt := Build(receivables, june(), rows)
	refs := make([]string, 0, len(stmt.Rows))
	for _, row := range stmt.Rows {
		refs = append(refs, row.Reference)
	}
	require.Equal(t, []string{"87", "88", "89", "90"}, refs)

	var balance int64
	for _, row := range stmt.Rows {
		balance += row.Debit - row.Credit
		require.Equal(t, balance, row.Balance)
	}
}

func TestBuildCashBookScenario(t *testing.T) {
	rows := []DetailRow{
		// Before the period: nets to the 500,000 opening balance.
		{Date: day(0).AddDate(0, -1, 15), Reference: "1", RefKind: mappings.KindPayment, Debit: 800000, Seq: 0},
		{Date: day(0).AddDate(0, -1, 20), Reference: "2", RefKind: mappings.KindPayment, Credit: 300000, Seq: 1},
		// Period receipts and payments.
		{Date: day(3), Reference: "10", RefKind: mappings.KindPayment, Debit: 2000000, Seq: 2},
		{Date: day(12), Reference: "11", RefKind: mappings.KindPayment, Credit: 1200000, Seq: 3},
	}
	stmt := Build(cashAccount, june(), rows)
	require.Equal(t, int64(500000), stmt.Opening)
	require.Equal(t, int64(2000000), stmt.TotalDebit)
	require.Equal(t, int64(1200000), stmt.TotalCredit)
	require.Equal(t, int64(1300000), stmt.Closing)
	require.Equal(t, stmt.Opening+stmt.TotalDebit-stmt.TotalCredit, stmt.Closing)
}

func TestBuildIgnoresRowsAfterPeriod(t *testing.T) {
	rows := []DetailRow{
		{Date: day(10), Reference: "5", RefKind: mappings.KindSale, Debit: 1000, Seq: 0},
		{Date: day(31).AddDate(0, 1, 0), Reference: "6", RefKind: mappings.KindSale, Debit: 9999, Seq: 1},
	}
	stmt := Build(receivables, june(), rows)
	require.Len(t, stmt.Rows, 1)
	require.Equal(t, int64(1000), stmt.Closing)
}

func TestBuildPresentsDebitNormalSignFlip(t *testing.T) {
	// Customer invoiced 500,000 then pays 800,000: the receivable flips
	// to a credit balance.
	rows := []DetailRow{
		{Date: day(2), Reference: "20", RefKind: mappings.KindSale, Debit: 500000, Seq: 0},
		{Date: day(9), Reference: "21", RefKind: mappings.KindPayment, Credit: 800000, Seq: 1},
	}
	stmt := Build(receivables, june(), rows)
	require.Equal(t, int64(-300000), stmt.Closing)
	require.Equal(t, int64(0), stmt.ClosingDebit)
	require.Equal(t, int64(300000), stmt.ClosingCredit)

	require.Equal(t, int64(500000), stmt.Rows[0].BalanceDebit)
	require.Equal(t, int64(0), stmt.Rows[0].BalanceCredit)
	require.Equal(t, int64(300000), stmt.Rows[1].BalanceCredit)
}

func TestBuildPresentsCreditNormalBalance(t *testing.T) {
	rows := []DetailRow{
		{Date: day(4), Reference: "30", RefKind: mappings.KindPurchase, Credit: 1100000, Seq: 0},
		{Date: day(18), Reference: "31", RefKind: mappings.KindPayment, Debit: 400000, Seq: 1},
	}
	stmt := Build(payables, june(), rows)
	require.Equal(t, int64(-700000), stmt.Closing)
	require.Equal(t, int64(700000), stmt.ClosingCredit)
	require.Equal(t, int64(0), stmt.ClosingDebit)
}

func TestBuildIsIdempotent(t *testing.T) {
	rows := []DetailRow{
		{Date: day(1), Reference: "50", RefKind: mappings.KindSale, Debit: 123456, Seq: 0},
		{Date: day(1), Reference: "50", RefKind: mappings.KindSale, Debit: 1, Seq: 1},
		{Date: day(15), Reference: "51", RefKind: mappings.KindPayment, Credit: 100000, Seq: 2},
	}
	first := Build(receivables, june(), rows)
	second := Build(receivables, june(), rows)
	require.Equal(t, first, second)
}
