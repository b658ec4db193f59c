package statements

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerline/ledgerline/internal/accounting/accounts"
)

// DetailSource fetches the raw postings a statement replays.
type DetailSource interface {
	DetailRows(ctx context.Context, scope Scope, until time.Time) ([]DetailRow, error)
}

// Service composes the chart-of-accounts resolver and the journal log
// into statement queries. It holds no cache and no mutable state;
// every call recomputes the opening balance from the log, so it is
// safe under concurrent writers appending confirmed entries.
type Service struct {
	source   DetailSource
	resolver accounts.Resolver
}

func NewService(source DetailSource, resolver accounts.Resolver) *Service {
	return &Service{source: source, resolver: resolver}
}

// Statement builds the ledger for one scope over one period.
func (s *Service) Statement(ctx context.Context, scope Scope, period Period) (Statement, error) {
	account, err := s.resolver.Lookup(ctx, scope.AccountCode)
	if err != nil {
		return Statement{}, err
	}
	rows, err := s.source.DetailRows(ctx, scope, period.To)
	if err != nil {
		return Statement{}, err
	}
	return Build(account, period, rows), nil
}

// StatementMany builds several scopes over the same period in parallel.
// Each build only reads the immutable log, so fan-out needs no locks.
func (s *Service) StatementMany(ctx context.Context, scopes []Scope, period Period) ([]Statement, error) {
	results := make([]Statement, len(scopes))
	g, ctx := errgroup.WithContext(ctx)
	for idx, scope := range scopes {
		idx, scope := idx, scope
		g.Go(func() error {
			stmt, err := s.Statement(ctx, scope, period)
			if err != nil {
				return err
			}
			results[idx] = stmt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
