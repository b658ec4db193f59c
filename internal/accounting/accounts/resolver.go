package accounts

import (
	"context"
	"errors"
)

// ErrAccountNotFound indicates a code absent from the chart of accounts.
var ErrAccountNotFound = errors.New("accounting: account not found")

// Resolver looks up immutable account reference data by code. The chart
// of accounts itself is owned externally; the engine only reads it.
type Resolver interface {
	Lookup(ctx context.Context, code string) (Account, error)
}

// Static is a map-backed Resolver for tests and fixed charts.
type Static map[string]Account

// NewStatic builds a Static resolver keyed by account code.
func NewStatic(accs ...Account) Static {
	s := make(Static, len(accs))
	for _, a := range accs {
		s[a.Code] = a
	}
	return s
}

func (s Static) Lookup(_ context.Context, code string) (Account, error) {
	acc, ok := s[code]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acc, nil
}
