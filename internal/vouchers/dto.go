package vouchers

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/accounting/journals"
	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
)

// LineItemInput is one draft line as submitted by the caller.
type LineItemInput struct {
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitPrice int64           `json:"unit_price" validate:"gte=0"`
	Discount  int64           `json:"discount" validate:"gte=0"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	UnitCost  int64           `json:"unit_cost" validate:"gte=0"`
}

// PaymentInput describes the single movement of a payment voucher.
type PaymentInput struct {
	Amount         int64                     `json:"amount" validate:"gt=0"`
	CashAccount    string                    `json:"cash_account" validate:"required"`
	CounterAccount string                    `json:"counter_account" validate:"required"`
	Direction      journals.PaymentDirection `json:"direction" validate:"oneof=INFLOW OUTFLOW"`
}

// OverrideLineInput is one manually supplied journal line.
type OverrideLineInput struct {
	AccountCode string `json:"account_code" validate:"required"`
	Debit       int64  `json:"debit" validate:"gte=0"`
	Credit      int64  `json:"credit" validate:"gte=0"`
}

// DraftInput carries the user-editable fields of a voucher. Drafts are
// free-form: line arithmetic and balance rules apply at confirmation,
// not here.
type DraftInput struct {
	Kind           mappings.DocumentKind `json:"kind" validate:"required"`
	Number         string                `json:"number"`
	Date           time.Time             `json:"date" validate:"required"`
	CounterpartyID string                `json:"counterparty_id"`
	Memo           string                `json:"memo"`
	Lines          []LineItemInput       `json:"lines" validate:"dive"`
	Payment        *PaymentInput         `json:"payment"`
	Override       []OverrideLineInput   `json:"override" validate:"dive"`
}

// Validate checks structural rules that hold even for drafts.
func (in DraftInput) Validate() error {
	if err := in.Kind.Validate(); err != nil {
		return err
	}
	if in.Date.IsZero() {
		return errors.New("vouchers: date required")
	}
	if in.Kind == mappings.KindPayment && len(in.Lines) > 0 {
		return errors.New("vouchers: payment vouchers carry a single amount, not line items")
	}
	for idx, line := range in.Override {
		if line.Debit > 0 && line.Credit > 0 {
			return fmt.Errorf("vouchers: override line %d cannot be both debit and credit", idx)
		}
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("vouchers: override line %d negative amount", idx)
		}
	}
	return nil
}

func (in DraftInput) lines() []LineItem {
	items := make([]LineItem, 0, len(in.Lines))
	for idx, line := range in.Lines {
		items = append(items, LineItem{
			LineNo:    idx + 1,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			TaxRate:   line.TaxRate,
			UnitCost:  line.UnitCost,
		})
	}
	return items
}

func (in DraftInput) payment() *PaymentDetails {
	if in.Payment == nil {
		return nil
	}
	return &PaymentDetails{
		Amount:         in.Payment.Amount,
		CashAccount:    in.Payment.CashAccount,
		CounterAccount: in.Payment.CounterAccount,
		Direction:      in.Payment.Direction,
	}
}

func (in DraftInput) override() []journals.Detail {
	if len(in.Override) == 0 {
		return nil
	}
	lines := make([]journals.Detail, 0, len(in.Override))
	for _, line := range in.Override {
		lines = append(lines, journals.Detail{
			AccountCode: line.AccountCode,
			Debit:       line.Debit,
			Credit:      line.Credit,
		})
	}
	return lines
}

// CancelInput carries optional reversal parameters. Date defaults to
// the original entry's date, Memo to a generated reversal note.
type CancelInput struct {
	Date *time.Time `json:"date"`
	Memo string     `json:"memo"`
}
