// Package calc implements the pure line arithmetic shared by vouchers
// and journal generation. Money is integer denominated; intermediate
// results round to a whole unit before anything is summed, so totals do
// not drift across many small lines.
package calc

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/accounting/shared"
)

var hundred = decimal.NewFromInt(100)

// LineInput carries the user-editable fields of one voucher line.
// TaxRate is a percentage, e.g. decimal 10 for 10% VAT. UnitCost is the
// optional cost basis for cost-of-goods postings on sales.
type LineInput struct {
	Quantity  int64
	UnitPrice int64
	Discount  int64
	TaxRate   decimal.Decimal
	UnitCost  int64
}

// LineResult holds the derived amounts for one line.
type LineResult struct {
	Amount        int64
	AfterDiscount int64
	VAT           int64
	Total         int64
	CostBasis     int64
}

// Compute derives the amounts for a single line. It has no side effects
// and is safe to call on every edit.
func Compute(line LineInput) (LineResult, error) {
	return computeAt(0, line)
}

func computeAt(idx int, line LineInput) (LineResult, error) {
	amount := line.Quantity * line.UnitPrice
	if line.Discount > amount {
		return LineResult{}, &shared.InvalidDiscountError{Line: idx, Discount: line.Discount, Amount: amount}
	}
	after := amount - line.Discount
	vat := decimal.NewFromInt(after).
		Mul(line.TaxRate).
		Div(hundred).
		Round(0).
		IntPart()
	return LineResult{
		Amount:        amount,
		AfterDiscount: after,
		VAT:           vat,
		Total:         after + vat,
		CostBasis:     line.Quantity * line.UnitCost,
	}, nil
}

// ComputeAll derives every line, reporting the offending line index on
// failure so the caller can surface the error next to the field.
func ComputeAll(lines []LineInput) ([]LineResult, error) {
	results := make([]LineResult, 0, len(lines))
	for idx, line := range lines {
		res, err := computeAt(idx, line)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Totals aggregates line results for journal generation.
type Totals struct {
	AfterDiscount int64
	VAT           int64
	Grand         int64
	Cost          int64
}

// Sum folds line results into posting totals.
func Sum(results []LineResult) Totals {
	var t Totals
	for _, res := range results {
		t.AfterDiscount += res.AfterDiscount
		t.VAT += res.VAT
		t.Grand += res.Total
		t.Cost += res.CostBasis
	}
	return t
}
