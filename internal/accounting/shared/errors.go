// Package shared holds error values common to the accounting packages.
package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument indicates a voucher with nothing to post.
	ErrEmptyDocument = errors.New("accounting: document has no line items")
	// ErrEntryNotFound indicates a missing journal entry.
	ErrEntryNotFound = errors.New("accounting: journal entry not found")
	// ErrEntryExists indicates the source voucher already produced an entry.
	ErrEntryExists = errors.New("accounting: journal entry already exists for source")
	// ErrVoucherNotFound indicates a missing voucher.
	ErrVoucherNotFound = errors.New("accounting: voucher not found")
	// ErrConfirmedVoucherEdit indicates an attempt to mutate a voucher
	// that left the draft state. The caller must post a reversing entry.
	ErrConfirmedVoucherEdit = errors.New("accounting: voucher is no longer editable")
	// ErrInvalidStatus indicates a lifecycle transition that can't proceed.
	ErrInvalidStatus = errors.New("accounting: invalid status transition")
	// ErrVoucherLocked indicates a concurrent confirmation holds the edit lock.
	ErrVoucherLocked = errors.New("accounting: voucher locked by another confirmation")
)

// ConfigurationError reports an account role that could not be resolved
// through the injected mapping and chart of accounts. It is fatal to the
// generation attempt and is not retried.
type ConfigurationError struct {
	Kind string
	Role string
	Code string
}

func (e *ConfigurationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("accounting: %s role %q maps to unknown account %q", e.Kind, e.Role, e.Code)
	}
	return fmt.Sprintf("accounting: %s has no account mapped for role %q", e.Kind, e.Role)
}

// UnbalancedEntryError reports a debit/credit mismatch. Delta is the
// signed debit minus credit difference; the engine refuses to persist
// and never rebalances on the caller's behalf.
type UnbalancedEntryError struct {
	Delta int64
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("accounting: entry does not balance, debit-credit delta %d", e.Delta)
}

// InvalidDiscountError reports a line whose discount exceeds its amount.
type InvalidDiscountError struct {
	Line     int
	Discount int64
	Amount   int64
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("accounting: line %d discount %d exceeds amount %d", e.Line, e.Discount, e.Amount)
}
