package vouchers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline/internal/accounting/calc"
	"github.com/ledgerline/ledgerline/internal/accounting/journals"
	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
)

// Status enumerates the voucher lifecycle.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// LineItem is one user-editable document line. Derived amounts are
// recomputed from these fields, never stored alongside them.
type LineItem struct {
	LineNo    int
	Quantity  int64
	UnitPrice int64
	Discount  int64
	TaxRate   decimal.Decimal
	UnitCost  int64
}

// PaymentDetails carries the fixed amount of a payment/receipt voucher.
type PaymentDetails struct {
	Amount         int64
	CashAccount    string
	CounterAccount string
	Direction      journals.PaymentDirection
}

// Voucher is a commercial document. It is mutable while in draft;
// confirmation freezes it and produces exactly one journal entry,
// cancellation of a confirmed voucher produces exactly one reversal.
type Voucher struct {
	ID             uuid.UUID
	Number         string
	Kind           mappings.DocumentKind
	Date           time.Time
	CounterpartyID string
	Memo           string
	Status         Status
	Lines          []LineItem
	Payment        *PaymentDetails
	Override       []journals.Detail
	EntryID        *uuid.UUID
	ReversalID     *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Document freezes the voucher into the immutable snapshot journal
// generation consumes.
func (v Voucher) Document() journals.Document {
	doc := journals.Document{
		Kind:           v.Kind,
		Ref:            v.ID,
		Number:         v.Number,
		Date:           v.Date,
		CounterpartyID: v.CounterpartyID,
		Memo:           v.Memo,
		Override:       v.Override,
	}
	for _, line := range v.Lines {
		doc.Lines = append(doc.Lines, calc.LineInput{
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			TaxRate:   line.TaxRate,
			UnitCost:  line.UnitCost,
		})
	}
	if v.Payment != nil {
		doc.Payment = &journals.PaymentLeg{
			Amount:         v.Payment.Amount,
			CashAccount:    v.Payment.CashAccount,
			CounterAccount: v.Payment.CounterAccount,
			Direction:      v.Payment.Direction,
		}
	}
	return doc
}
