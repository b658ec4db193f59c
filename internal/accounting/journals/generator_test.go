package journals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/accounting/accounts"
	"github.com/ledgerline/ledgerline/internal/accounting/calc"
	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
	"github.com/ledgerline/ledgerline/internal/accounting/shared"
)

func testResolver() accounts.Static {
	return accounts.NewStatic(
		accounts.Account{Code: "1510", Name: "Inventory", Type: accounts.TypeAsset, NormalSide: accounts.SideDebit},
		accounts.Account{Code: "1330", Name: "Input VAT", Type: accounts.TypeAsset, NormalSide: accounts.SideDebit},
		accounts.Account{Code: "3310", Name: "Trade payables", Type: accounts.TypeLiability, NormalSide: accounts.SideCredit},
		accounts.Account{Code: "1310", Name: "Trade receivables", Type: accounts.TypeAsset, NormalSide: accounts.SideDebit},
		accounts.Account{Code: "5110", Name: "Sales revenue", Type: accounts.TypeRevenue, NormalSide: accounts.SideCredit},
		accounts.Account{Code: "3331", Name: "Output VAT", Type: accounts.TypeLiability, NormalSide: accounts.SideCredit},
		accounts.Account{Code: "6320", Name: "Cost of goods sold", Type: accounts.TypeExpense, NormalSide: accounts.SideDebit},
		accounts.Account{Code: "1111", Name: "Cash on hand", Type: accounts.TypeAsset, NormalSide: accounts.SideDebit},
	)
}

func testMappings() mappings.Static {
	return mappings.Static{
		mappings.KindPurchase: {
			mappings.RoleInventory: "1510",
			mappings.RoleInputVAT:  "1330",
			mappings.RolePayable:   "3310",
		},
		mappings.KindSale: {
			mappings.RoleReceivable:  "1310",
			mappings.RoleRevenue:     "5110",
			mappings.RoleOutputVAT:   "3331",
			mappings.RoleCostOfGoods: "6320",
			mappings.RoleInventory:   "1510",
		},
		mappings.KindPayment: {},
	}
}

func newTestGenerator() *Generator {
	return NewGenerator(testResolver(), testMappings())
}

func lineFor(code string, lines []Detail) (Detail, bool) {
	for _, l := range lines {
		if l.AccountCode == code {
			return l, true
		}
	}
	return Detail{}, false
}

func TestGeneratePurchase(t *testing.T) {
	gen := newTestGenerator()
	entry, err := gen.Generate(context.Background(), Document{
		Kind: mappings.KindPurchase,
		Ref:  uuid.New(),
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Lines: []calc.LineInput{
			{Quantity: 10, UnitPrice: 100000, TaxRate: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	require.Len(t, entry.Lines, 3)

	inv, ok := lineFor("1510", entry.Lines)
	require.True(t, ok)
	require.Equal(t, int64(1000000), inv.Debit)

	vat, ok := lineFor("1330", entry.Lines)
	require.True(t, ok)
	require.Equal(t, int64(100000), vat.Debit)

	payable, ok := lineFor("3310", entry.Lines)
	require.True(t, ok)
	require.Equal(t, int64(1100000), payable.Credit)

	require.NoError(t, CheckBalance(entry.Lines))
}

func TestGeneratePurchaseOmitsZeroVAT(t *testing.T) {
	gen := newTestGenerator()
	entry, err := gen.Generate(context.Background(), Document{
		Kind:  mappings.KindPurchase,
		Ref:   uuid.New(),
		Date:  time.Now(),
		Lines: []calc.LineInput{{Quantity: 2, UnitPrice: 5000}},
	})
	require.NoError(t, err)
	require.Len(t, entry.Lines, 2)
	_, hasVAT := lineFor("1330", entry.Lines)
	require.False(t, hasVAT)
}

func TestGenerateSaleWithCostBasis(t *testing.T) {
	gen := newTestGenerator()
	entry, err := gen.Generate(context.Background(), Document{
		Kind: mappings.KindSale,
		Ref:  uuid.New(),
		Date: time.Now(),
		Lines: []calc.LineInput{
			{Quantity: 5, UnitPrice: 200000, TaxRate: decimal.NewFromInt(10), UnitCost: 150000},
		},
	})
	require.NoError(t, err)
	require.Len(t, entry.Lines, 5)

	receivable, _ := lineFor("1310", entry.Lines)
	require.Equal(t, int64(1100000), receivable.Debit)
	revenue, _ := lineFor("5110", entry.Lines)
	require.Equal(t, int64(1000000), revenue.Credit)
	outputVAT, _ := lineFor("3331", entry.Lines)
	require.Equal(t, int64(100000), outputVAT.Credit)
	cogs, _ := lineFor("6320", entry.Lines)
	require.Equal(t, int64(750000), cogs.Debit)
	inventory, _ := lineFor("1510", entry.Lines)
	require.Equal(t, int64(750000), inventory.Credit)

	require.NoError(t, CheckBalance(entry.Lines))
}

func TestGenerateSaleWithoutCostBasisSkipsCOGSPair(t *testing.T) {
	gen := newTestGenerator()
	entry, err := gen.Generate(context.Background(), Document{
		Kind:  mappings.KindSale,
		Ref:   uuid.New(),
		Date:  time.Now(),
		Lines: []calc.LineInput{{Quantity: 1, UnitPrice: 300000, TaxRate: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	require.Len(t, entry.Lines, 3)
	_, hasCOGS := lineFor("6320", entry.Lines)
	require.False(t, hasCOGS)
}

func TestGeneratePaymentDirections(t *testing.T) {
	gen := newTestGenerator()

	receipt, err := gen.Generate(context.Background(), Document{
		Kind: mappings.KindPayment,
		Ref:  uuid.New(),
		Date: time.Now(),
		Payment: &PaymentLeg{
			Amount:         250000,
			CashAccount:    "1111",
			CounterAccount: "1310",
			Direction:      DirectionInflow,
		},
	})
	require.NoError(t, err)
	require.Equal(t, []Detail{
		{AccountCode: "1111", Debit: 250000},
		{AccountCode: "1310", Credit: 250000},
	}, receipt.Lines)

	disbursement, err := gen.Generate(context.Background(), Document{
		Kind: mappings.KindPayment,
		Ref:  uuid.New(),
		Date: time.Now(),
		Payment: &PaymentLeg{
			Amount:         400000,
			CashAccount:    "1111",
			CounterAccount: "3310",
			Direction:      DirectionOutflow,
		},
	})
	require.NoError(t, err)
	require.Equal(t, []Detail{
		{AccountCode: "3310", Debit: 400000},
		{AccountCode: "1111", Credit: 400000},
	}, disbursement.Lines)
}

func TestGenerateRejectsEmptyDocument(t *testing.T) {
	gen := newTestGenerator()

	_, err := gen.Generate(context.Background(), Document{Kind: mappings.KindPurchase, Ref: uuid.New()})
	require.ErrorIs(t, err, shared.ErrEmptyDocument)

	_, err = gen.Generate(context.Background(), Document{Kind: mappings.KindPayment, Ref: uuid.New()})
	require.ErrorIs(t, err, shared.ErrEmptyDocument)
}

func TestGenerateRejectsUnmappedRole(t *testing.T) {
	m := testMappings()
	delete(m[mappings.KindPurchase], mappings.RolePayable)
	gen := NewGenerator(testResolver(), m)

	_, err := gen.Generate(context.Background(), Document{
		Kind:  mappings.KindPurchase,
		Ref:   uuid.New(),
		Lines: []calc.LineInput{{Quantity: 1, UnitPrice: 1000}},
	})
	var cfgErr *shared.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, string(mappings.RolePayable), cfgErr.Role)
}

func TestGenerateRejectsUnknownAccountCode(t *testing.T) {
	m := testMappings()
	m[mappings.KindPurchase][mappings.RoleInventory] = "9999"
	gen := NewGenerator(testResolver(), m)

	_, err := gen.Generate(context.Background(), Document{
		Kind:  mappings.KindPurchase,
		Ref:   uuid.New(),
		Lines: []calc.LineInput{{Quantity: 1, UnitPrice: 1000}},
	})
	var cfgErr *shared.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "9999", cfgErr.Code)
}

func TestGenerateRejectsDiscountOverAmount(t *testing.T) {
	gen := newTestGenerator()
	_, err := gen.Generate(context.Background(), Document{
		Kind:  mappings.KindPurchase,
		Ref:   uuid.New(),
		Lines: []calc.LineInput{{Quantity: 1, UnitPrice: 1000, Discount: 2000}},
	})
	var discountErr *shared.InvalidDiscountError
	require.ErrorAs(t, err, &discountErr)
}

func TestGenerateRefusesUnbalancedOverride(t *testing.T) {
	gen := newTestGenerator()
	_, err := gen.Generate(context.Background(), Document{
		Kind:  mappings.KindPurchase,
		Ref:   uuid.New(),
		Lines: []calc.LineInput{{Quantity: 1, UnitPrice: 1000}},
		Override: []Detail{
			{AccountCode: "1510", Debit: 1000},
			{AccountCode: "3310", Credit: 700},
		},
	})
	var unbalanced *shared.UnbalancedEntryError
	require.ErrorAs(t, err, &unbalanced)
	require.Equal(t, int64(300), unbalanced.Delta)
}

func TestGenerateAcceptsBalancedOverride(t *testing.T) {
	gen := newTestGenerator()
	override := []Detail{
		{AccountCode: "1510", Debit: 800},
		{AccountCode: "6320", Debit: 200},
		{AccountCode: "3310", Credit: 1000},
	}
	entry, err := gen.Generate(context.Background(), Document{
		Kind:     mappings.KindPurchase,
		Ref:      uuid.New(),
		Lines:    []calc.LineInput{{Quantity: 1, UnitPrice: 1000}},
		Override: override,
	})
	require.NoError(t, err)
	require.Equal(t, override, entry.Lines)
}

func TestReverseSwapsSides(t *testing.T) {
	original := JournalEntry{
		ID:         uuid.New(),
		Date:       time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		SourceKind: mappings.KindSale,
		SourceID:   uuid.New(),
		Lines: []Detail{
			{AccountCode: "1310", Debit: 1100000},
			{AccountCode: "5110", Credit: 1000000},
			{AccountCode: "3331", Credit: 100000},
		},
	}
	reversal := Reverse(original, original.Date, "cancel")
	require.NotNil(t, reversal.ReversalOf)
	require.Equal(t, original.ID, *reversal.ReversalOf)
	require.Equal(t, []Detail{
		{AccountCode: "1310", Credit: 1100000},
		{AccountCode: "5110", Debit: 1000000},
		{AccountCode: "3331", Debit: 100000},
	}, reversal.Lines)
	require.NoError(t, CheckBalance(reversal.Lines))
}
