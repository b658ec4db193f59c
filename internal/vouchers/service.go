package vouchers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/ledgerline/internal/accounting/journals"
	"github.com/ledgerline/ledgerline/internal/accounting/shared"
	internalShared "github.com/ledgerline/ledgerline/internal/shared"
)

// EditLocker serializes confirmations of the same voucher.
type EditLocker interface {
	Acquire(ctx context.Context, key string) (func(context.Context) error, error)
}

// Service is the voucher lifecycle controller: draft -> confirmed ->
// cancelled via reversing entry, or draft -> cancelled as a discard.
type Service struct {
	repo   Repository
	gen    *journals.Generator
	locker EditLocker
	now    func() time.Time
}

func NewService(repo Repository, gen *journals.Generator, locker EditLocker) *Service {
	return &Service{repo: repo, gen: gen, locker: locker, now: time.Now}
}

// WithNow overrides the clock, used by tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateDraft stores a new voucher in draft state. No journal entry
// exists at this point.
func (s *Service) CreateDraft(ctx context.Context, input DraftInput) (Voucher, error) {
	if err := input.Validate(); err != nil {
		return Voucher{}, err
	}
	now := s.now()
	v := Voucher{
		ID:             uuid.New(),
		Number:         input.Number,
		Kind:           input.Kind,
		Date:           input.Date,
		CounterpartyID: input.CounterpartyID,
		Memo:           input.Memo,
		Status:         StatusDraft,
		Lines:          input.lines(),
		Payment:        input.payment(),
		Override:       input.override(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if v.Number == "" {
		v.Number = v.ID.String()[:8]
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Voucher{}, err
	}
	return v, nil
}

// Get loads one voucher.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Voucher, error) {
	return s.repo.Get(ctx, id)
}

// UpdateDraft replaces the editable fields of a draft. Any voucher that
// left the draft state is frozen; corrections go through Cancel and a
// fresh voucher.
func (s *Service) UpdateDraft(ctx context.Context, id uuid.UUID, input DraftInput) (Voucher, error) {
	if err := input.Validate(); err != nil {
		return Voucher{}, err
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Voucher{}, err
	}
	if current.Status != StatusDraft {
		return Voucher{}, shared.ErrConfirmedVoucherEdit
	}
	if input.Kind != current.Kind {
		return Voucher{}, fmt.Errorf("vouchers: kind cannot change after creation")
	}
	current.Number = input.Number
	if current.Number == "" {
		current.Number = current.ID.String()[:8]
	}
	current.Date = input.Date
	current.CounterpartyID = input.CounterpartyID
	current.Memo = input.Memo
	current.Lines = input.lines()
	current.Payment = input.payment()
	current.Override = input.override()
	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return Voucher{}, err
	}
	return current, nil
}

// Confirm freezes the draft, generates its journal entry, and persists
// the status change together with the entry in one transaction. On any
// failure the voucher stays in draft and no partial entry exists.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (Voucher, journals.JournalEntry, error) {
	release, err := s.locker.Acquire(ctx, internalShared.VoucherLockKey(id))
	if err != nil {
		if errors.Is(err, internalShared.ErrLockHeld) {
			return Voucher{}, journals.JournalEntry{}, shared.ErrVoucherLocked
		}
		return Voucher{}, journals.JournalEntry{}, err
	}
	defer func() { _ = release(ctx) }()

	var confirmed Voucher
	var entry journals.JournalEntry
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		v, err := tx.GetVoucherForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v.Status != StatusDraft {
			return shared.ErrInvalidStatus
		}

		generated, err := s.gen.Generate(ctx, v.Document())
		if err != nil {
			return err
		}
		generated.ID = uuid.New()
		generated.CreatedAt = s.now()
		if generated.Memo == "" {
			generated.Memo = v.Number
		}
		generated.Number, err = tx.NextEntryNumber(ctx)
		if err != nil {
			return err
		}

		if err := tx.InsertJournalEntry(ctx, generated); err != nil {
			return err
		}
		if err := tx.SetStatus(ctx, v.ID, StatusConfirmed, &generated.ID, nil); err != nil {
			return err
		}
		v.Status = StatusConfirmed
		v.EntryID = &generated.ID
		confirmed = v
		entry = generated
		return nil
	})
	if err != nil {
		return Voucher{}, journals.JournalEntry{}, err
	}
	return confirmed, entry, nil
}

// Cancel discards a draft, or posts a reversing entry for a confirmed
// voucher. The original journal entry is never edited or deleted.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, input CancelInput) (Voucher, error) {
	var cancelled Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		v, err := tx.GetVoucherForUpdate(ctx, id)
		if err != nil {
			return err
		}
		switch v.Status {
		case StatusDraft:
			if err := tx.SetStatus(ctx, v.ID, StatusCancelled, nil, nil); err != nil {
				return err
			}
			v.Status = StatusCancelled
			cancelled = v
			return nil
		case StatusConfirmed:
			if v.EntryID == nil {
				return shared.ErrEntryNotFound
			}
			original, err := tx.GetJournalEntry(ctx, *v.EntryID)
			if err != nil {
				return err
			}
			date := original.Date
			if input.Date != nil {
				date = *input.Date
			}
			memo := input.Memo
			if memo == "" {
				memo = fmt.Sprintf("Reversal of JE %d", original.Number)
			}
			reversal := journals.Reverse(original, date, memo)
			reversal.ID = uuid.New()
			reversal.CreatedAt = s.now()
			reversal.Number, err = tx.NextEntryNumber(ctx)
			if err != nil {
				return err
			}
			if err := tx.InsertJournalEntry(ctx, reversal); err != nil {
				return err
			}
			if err := tx.SetStatus(ctx, v.ID, StatusCancelled, nil, &reversal.ID); err != nil {
				return err
			}
			v.Status = StatusCancelled
			v.ReversalID = &reversal.ID
			cancelled = v
			return nil
		default:
			return shared.ErrInvalidStatus
		}
	})
	if err != nil {
		return Voucher{}, err
	}
	return cancelled, nil
}
