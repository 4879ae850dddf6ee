package account

import (
	"fmt"
	"time"
)

// LedgerEntry is one line of the append-only credit journal. Every purchase,
// debit, refund and adjustment is recorded so that for any account
// sum(entries) == current balance at all times.
type LedgerEntry struct {
	id            uint
	accountID     uint
	kind          EntryKind
	amount        int
	reservationID *uint
	reference     *string
	description   string
	createdAt     time.Time
}

// NewLedgerEntry creates a journal line. amount is always positive; the sign
// of the balance effect is derived from the kind (see Delta).
func NewLedgerEntry(accountID uint, kind EntryKind, amount int) (*LedgerEntry, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid ledger entry kind: %s", kind)
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &LedgerEntry{
		accountID: accountID,
		kind:      kind,
		amount:    amount,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructLedgerEntry rebuilds a journal line from persistence.
func ReconstructLedgerEntry(
	entryID uint,
	accountID uint,
	kind EntryKind,
	amount int,
	reservationID *uint,
	reference *string,
	description string,
	createdAt time.Time,
) *LedgerEntry {
	return &LedgerEntry{
		id:            entryID,
		accountID:     accountID,
		kind:          kind,
		amount:        amount,
		reservationID: reservationID,
		reference:     reference,
		description:   description,
		createdAt:     createdAt,
	}
}

func (e *LedgerEntry) ID() uint             { return e.id }
func (e *LedgerEntry) AccountID() uint      { return e.accountID }
func (e *LedgerEntry) Kind() EntryKind      { return e.kind }
func (e *LedgerEntry) Amount() int          { return e.amount }
func (e *LedgerEntry) ReservationID() *uint { return e.reservationID }
func (e *LedgerEntry) Reference() *string   { return e.reference }
func (e *LedgerEntry) Description() string  { return e.description }
func (e *LedgerEntry) CreatedAt() time.Time { return e.createdAt }

// SetID is called by the persistence layer after insert.
func (e *LedgerEntry) SetID(entryID uint) {
	if e.id == 0 {
		e.id = entryID
	}
}

// WithReservation links the entry to the reservation it funded.
func (e *LedgerEntry) WithReservation(reservationID uint) *LedgerEntry {
	e.reservationID = &reservationID
	return e
}

// WithReference attaches a unique external reference (Stripe event id). The
// ledger table enforces uniqueness on it, which makes webhook processing
// idempotent under replays.
func (e *LedgerEntry) WithReference(ref string) *LedgerEntry {
	if ref != "" {
		e.reference = &ref
	}
	return e
}

// WithDescription attaches a free-form note.
func (e *LedgerEntry) WithDescription(desc string) *LedgerEntry {
	e.description = desc
	return e
}

// Delta is the signed balance effect of the entry.
func (e *LedgerEntry) Delta() int {
	switch e.kind {
	case EntryKindDebit:
		return -e.amount
	default:
		return e.amount
	}
}
