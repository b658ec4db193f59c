package journals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline/internal/accounting/accounts"
	"github.com/ledgerline/ledgerline/internal/accounting/calc"
	"github.com/ledgerline/ledgerline/internal/accounting/mappings"
	"github.com/ledgerline/ledgerline/internal/accounting/shared"
)

// PaymentDirection tells which way money moves through the cash account.
type PaymentDirection string

const (
	// DirectionInflow is a receipt: cash is debited.
	DirectionInflow PaymentDirection = "INFLOW"
	// DirectionOutflow is a disbursement: cash is credited.
	DirectionOutflow PaymentDirection = "OUTFLOW"
)

// PaymentLeg carries the fixed amount of a payment/receipt voucher and
// the two accounts it moves money between.
type PaymentLeg struct {
	Amount         int64
	CashAccount    string
	CounterAccount string
	Direction      PaymentDirection
}

// Document is the frozen voucher snapshot handed to generation. The
// controller builds it from a draft at confirmation time; the generator
// never sees mutable form state.
type Document struct {
	Kind           mappings.DocumentKind
	Ref            uuid.UUID
	Number         string
	Date           time.Time
	CounterpartyID string
	Memo           string
	Lines          []calc.LineInput
	Payment        *PaymentLeg
	Override       []Detail
}

// Generator turns voucher snapshots into balanced journal entries. The
// chart of accounts and the role mapping are injected; the generator
// itself knows no concrete account codes.
type Generator struct {
	resolver accounts.Resolver
	roles    mappings.Provider
}

func NewGenerator(resolver accounts.Resolver, roles mappings.Provider) *Generator {
	return &Generator{resolver: resolver, roles: roles}
}

// Generate builds the journal entry for doc. Validation order: empty
// document, unresolvable account roles, then the debit/credit balance
// of whatever set of lines ends up being posted. A caller-supplied
// override replaces the generated lines but is never rebalanced; an
// unbalanced override is refused with the signed delta.
func (g *Generator) Generate(ctx context.Context, doc Document) (JournalEntry, error) {
	if err := doc.Kind.Validate(); err != nil {
		return JournalEntry{}, err
	}

	var lines []Detail
	var err error
	switch doc.Kind {
	case mappings.KindPurchase:
		lines, err = g.purchaseLines(ctx, doc)
	case mappings.KindSale:
		lines, err = g.saleLines(ctx, doc)
	case mappings.KindPayment:
		lines, err = g.paymentLines(ctx, doc)
	}
	if err != nil {
		return JournalEntry{}, err
	}

	if len(doc.Override) > 0 {
		lines, err = g.overrideLines(ctx, doc)
		if err != nil {
			return JournalEntry{}, err
		}
	}

	if err := CheckBalance(lines); err != nil {
		return JournalEntry{}, err
	}

	return JournalEntry{
		Date:           doc.Date,
		SourceKind:     doc.Kind,
		SourceID:       doc.Ref,
		CounterpartyID: doc.CounterpartyID,
		Memo:           doc.Memo,
		Lines:          lines,
	}, nil
}

func (g *Generator) purchaseLines(ctx context.Context, doc Document) ([]Detail, error) {
	if len(doc.Lines) == 0 {
		return nil, shared.ErrEmptyDocument
	}
	results, err := calc.ComputeAll(doc.Lines)
	if err != nil {
		return nil, err
	}
	totals := calc.Sum(results)

	inventory, err := g.resolveRole(ctx, doc.Kind, mappings.RoleInventory)
	if err != nil {
		return nil, err
	}
	payable, err := g.resolveRole(ctx, doc.Kind, mappings.RolePayable)
	if err != nil {
		return nil, err
	}

	lines := []Detail{{AccountCode: inventory, Debit: totals.AfterDiscount}}
	if totals.VAT != 0 {
		inputVAT, err := g.resolveRole(ctx, doc.Kind, mappings.RoleInputVAT)
		if err != nil {
			return nil, err
		}
		lines = append(lines, Detail{AccountCode: inputVAT, Debit: totals.VAT})
	}
	lines = append(lines, Detail{AccountCode: payable, Credit: totals.Grand})
	return lines, nil
}

func (g *Generator) saleLines(ctx context.Context, doc Document) ([]Detail, error) {
	if len(doc.Lines) == 0 {
		return nil, shared.ErrEmptyDocument
	}
	results, err := calc.ComputeAll(doc.Lines)
	if err != nil {
		return nil, err
	}
	totals := calc.Sum(results)

	receivable, err := g.resolveRole(ctx, doc.Kind, mappings.RoleReceivable)
	if err != nil {
		return nil, err
	}
	revenue, err := g.resolveRole(ctx, doc.Kind, mappings.RoleRevenue)
	if err != nil {
		return nil, err
	}

	lines := []Detail{
		{AccountCode: receivable, Debit: totals.Grand},
		{AccountCode: revenue, Credit: totals.AfterDiscount},
	}
	if totals.VAT != 0 {
		outputVAT, err := g.resolveRole(ctx, doc.Kind, mappings.RoleOutputVAT)
		if err != nil {
			return nil, err
		}
		lines = append(lines, Detail{AccountCode: outputVAT, Credit: totals.VAT})
	}

	// Independent second pair moving cost basis out of inventory.
	if totals.Cost != 0 {
		cogs, err := g.resolveRole(ctx, doc.Kind, mappings.RoleCostOfGoods)
		if err != nil {
			return nil, err
		}
		inventory, err := g.resolveRole(ctx, doc.Kind, mappings.RoleInventory)
		if err != nil {
			return nil, err
		}
		lines = append(lines,
			Detail{AccountCode: cogs, Debit: totals.Cost},
			Detail{AccountCode: inventory, Credit: totals.Cost},
		)
	}
	return lines, nil
}

func (g *Generator) paymentLines(ctx context.Context, doc Document) ([]Detail, error) {
	if doc.Payment == nil || doc.Payment.Amount == 0 {
		return nil, shared.ErrEmptyDocument
	}
	leg := doc.Payment
	if err := g.ensureAccount(ctx, doc.Kind, "CASH", leg.CashAccount); err != nil {
		return nil, err
	}
	if err := g.ensureAccount(ctx, doc.Kind, "COUNTER", leg.CounterAccount); err != nil {
		return nil, err
	}
	if leg.Direction == DirectionInflow {
		return []Detail{
			{AccountCode: leg.CashAccount, Debit: leg.Amount},
			{AccountCode: leg.CounterAccount, Credit: leg.Amount},
		}, nil
	}
	return []Detail{
		{AccountCode: leg.CounterAccount, Debit: leg.Amount},
		{AccountCode: leg.CashAccount, Credit: leg.Amount},
	}, nil
}

func (g *Generator) overrideLines(ctx context.Context, doc Document) ([]Detail, error) {
	for _, line := range doc.Override {
		if err := g.ensureAccount(ctx, doc.Kind, "MANUAL", line.AccountCode); err != nil {
			return nil, err
		}
	}
	return doc.Override, nil
}

// resolveRole maps a role to an account code and verifies the code
// exists in the chart of accounts.
func (g *Generator) resolveRole(ctx context.Context, kind mappings.DocumentKind, role mappings.Role) (string, error) {
	mapping, err := g.roles.Mapping(ctx, kind)
	if err != nil {
		if errors.Is(err, mappings.ErrMappingNotFound) {
			return "", &shared.ConfigurationError{Kind: string(kind), Role: string(role)}
		}
		return "", err
	}
	code, ok := mapping[role]
	if !ok {
		return "", &shared.ConfigurationError{Kind: string(kind), Role: string(role)}
	}
	if err := g.ensureAccount(ctx, kind, string(role), code); err != nil {
		return "", err
	}
	return code, nil
}

func (g *Generator) ensureAccount(ctx context.Context, kind mappings.DocumentKind, role, code string) error {
	if _, err := g.resolver.Lookup(ctx, code); err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			return &shared.ConfigurationError{Kind: string(kind), Role: role, Code: code}
		}
		return err
	}
	return nil
}
