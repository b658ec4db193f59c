package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/accounting/shared"
)

func TestComputeBasicLine(t *testing.T) {
	res, err := Compute(LineInput{
		Quantity:  10,
		UnitPrice: 100000,
		TaxRate:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1000000), res.Amount)
	require.Equal(t, int64(1000000), res.AfterDiscount)
	require.Equal(t, int64(100000), res.VAT)
	require.Equal(t, int64(1100000), res.Total)
}

func TestComputeDiscount(t *testing.T) {
	res, err := Compute(LineInput{
		Quantity:  3,
		UnitPrice: 50000,
		Discount:  15000,
		TaxRate:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Equal(t, int64(150000), res.Amount)
	require.Equal(t, int64(135000), res.AfterDiscount)
	require.Equal(t, int64(13500), res.VAT)
	require.Equal(t, int64(148500), res.Total)
}

func TestComputeRoundsVATToWholeUnits(t *testing.T) {
	// 333 * 7.5% = 24.975, rounds to 25 before summation.
	res, err := Compute(LineInput{
		Quantity:  1,
		UnitPrice: 333,
		TaxRate:   decimal.RequireFromString("7.5"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(25), res.VAT)
	require.Equal(t, int64(358), res.Total)
}

func TestComputeRejectsExcessiveDiscount(t *testing.T) {
	_, err := Compute(LineInput{
		Quantity:  1,
		UnitPrice: 1000,
		Discount:  1500,
	})
	var discountErr *shared.InvalidDiscountError
	require.ErrorAs(t, err, &discountErr)
	require.Equal(t, int64(1500), discountErr.Discount)
	require.Equal(t, int64(1000), discountErr.Amount)
}

func TestComputeAllReportsLineIndex(t *testing.T) {
	_, err := ComputeAll([]LineInput{
		{Quantity: 1, UnitPrice: 1000},
		{Quantity: 2, UnitPrice: 100, Discount: 300},
	})
	var discountErr *shared.InvalidDiscountError
	require.ErrorAs(t, err, &discountErr)
	require.Equal(t, 1, discountErr.Line)
}

func TestSumAggregatesCostBasis(t *testing.T) {
	results, err := ComputeAll([]LineInput{
		{Quantity: 5, UnitPrice: 200000, TaxRate: decimal.NewFromInt(10), UnitCost: 150000},
		{Quantity: 2, UnitPrice: 100000, TaxRate: decimal.NewFromInt(10), UnitCost: 60000},
	})
	require.NoError(t, err)
	totals := Sum(results)
	require.Equal(t, int64(1200000), totals.AfterDiscount)
	require.Equal(t, int64(120000), totals.VAT)
	require.Equal(t, int64(1320000), totals.Grand)
	require.Equal(t, int64(870000), totals.Cost)
}
