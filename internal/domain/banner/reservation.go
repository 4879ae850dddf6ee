// Package banner holds the banner reservation aggregate, the closed position
// catalog and the calendar value objects. A reservation is an advertiser's
// claim on a set of civil dates for one position, backed by a creative, gated
// by admin validation and funded by the account credit ledger.
package banner

import (
	"time"

	"finderads/internal/shared/id"
)

// ReservationStatus is the validation state machine:
// pending -> approved (admin) with active toggling on and off afterwards, or
// pending -> rejected (admin, terminal). Dates and credits only ever attach to
// approved reservations, so rejection never needs a refund.
type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusApproved ReservationStatus = "approved"
	ReservationStatusRejected ReservationStatus = "rejected"
)

func (s ReservationStatus) String() string {
	return string(s)
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusApproved, ReservationStatusRejected:
		return true
	}
	return false
}

// Reservation is the aggregate root. creditsUsed always equals the summed
// cost of every booked batch; it only decreases by going to zero when the
// reservation is cancelled and refunded.
type Reservation struct {
	id          uint
	sid         string
	accountID   uint
	position    Position
	creative    Creative
	schedule    Schedule
	creditsUsed int
	status      ReservationStatus
	active      bool
	validatedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewReservation creates a pending reservation with zero dates and zero
// credits used.
func NewReservation(accountID uint, position Position, creative Creative) (*Reservation, error) {
	if accountID == 0 {
		return nil, ErrAccountRequired
	}
	if !position.IsValid() {
		return nil, ErrUnknownPosition(position.String())
	}

	now := time.Now().UTC()
	return &Reservation{
		sid:       id.MustGenerateWithPrefix(id.PrefixReservation, id.DefaultLength),
		accountID: accountID,
		position:  position,
		creative:  creative,
		schedule:  NewSchedule(nil),
		status:    ReservationStatusPending,
		active:    false,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructReservation rebuilds a reservation from persistence.
func ReconstructReservation(
	reservationID uint,
	sid string,
	accountID uint,
	position Position,
	creative Creative,
	schedule Schedule,
	creditsUsed int,
	status ReservationStatus,
	active bool,
	validatedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int,
) *Reservation {
	return &Reservation{
		id:          reservationID,
		sid:         sid,
		accountID:   accountID,
		position:    position,
		creative:    creative,
		schedule:    schedule,
		creditsUsed: creditsUsed,
		status:      status,
		active:      active,
		validatedAt: validatedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}
}

func (r *Reservation) ID() uint                  { return r.id }
func (r *Reservation) SID() string               { return r.sid }
func (r *Reservation) AccountID() uint           { return r.accountID }
func (r *Reservation) Position() Position        { return r.position }
func (r *Reservation) Creative() Creative        { return r.creative }
func (r *Reservation) Schedule() Schedule        { return r.schedule }
func (r *Reservation) CreditsUsed() int          { return r.creditsUsed }
func (r *Reservation) Status() ReservationStatus { return r.status }
func (r *Reservation) Active() bool              { return r.active }
func (r *Reservation) ValidatedAt() *time.Time   { return r.validatedAt }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }
func (r *Reservation) Version() int              { return r.version }

// SetID is called by the persistence layer after insert.
func (r *Reservation) SetID(reservationID uint) {
	if r.id == 0 {
		r.id = reservationID
	}
}

// Validated reports whether the reservation passed admin validation.
func (r *Reservation) Validated() bool {
	return r.status == ReservationStatusApproved
}

// Approve moves a pending reservation to approved and switches it on.
func (r *Reservation) Approve() error {
	switch r.status {
	case ReservationStatusApproved:
		return ErrAlreadyDecided
	case ReservationStatusRejected:
		return ErrRejectedTerminal
	}
	now := time.Now().UTC()
	r.status = ReservationStatusApproved
	r.active = true
	r.validatedAt = &now
	r.touch()
	return nil
}

// Reject terminally rejects a pending reservation. No refund is needed:
// pending reservations cannot hold dates or credits.
func (r *Reservation) Reject() error {
	switch r.status {
	case ReservationStatusApproved:
		return ErrAlreadyDecided
	case ReservationStatusRejected:
		return ErrRejectedTerminal
	}
	r.status = ReservationStatusRejected
	r.active = false
	r.touch()
	return nil
}

// SetActive toggles public serving. Only approved reservations can toggle;
// an inactive-but-approved reservation keeps blocking its slots.
func (r *Reservation) SetActive(active bool) error {
	if r.status != ReservationStatusApproved {
		return ErrNotValidated
	}
	r.active = active
	r.touch()
	return nil
}

// UpdateCreative swaps the ad payload. Allowed while pending or approved;
// approved creatives keep serving until the next resolver cache refresh.
func (r *Reservation) UpdateCreative(c Creative) error {
	if r.status == ReservationStatusRejected {
		return ErrRejectedTerminal
	}
	r.creative = c
	r.touch()
	return nil
}

// BookDates validates a date batch against the aggregate and applies it,
// returning the batch cost. The dates must be non-empty, today or later, and
// not already held by this reservation. System-wide slot uniqueness is
// enforced by the slot index at commit time; this method covers what the
// aggregate alone can check.
func (r *Reservation) BookDates(dates []Date, today Date) (int, error) {
	if r.status != ReservationStatusApproved {
		return 0, ErrNotValidated
	}
	if len(dates) == 0 {
		return 0, ErrNoDates
	}
	for _, d := range dates {
		if d.Before(today) {
			return 0, ErrPastDate
		}
		if r.schedule.Contains(d) {
			return 0, ErrSlotAlreadyBooked
		}
	}

	cost := r.position.CostPerDay() * len(dates)
	r.schedule = r.schedule.Add(dates)
	r.creditsUsed += cost
	r.touch()
	return cost, nil
}

// IsServable reports whether the public ad server may surface this
// reservation for the given date.
func (r *Reservation) IsServable(today Date) bool {
	return r.status == ReservationStatusApproved && r.active && r.schedule.Contains(today)
}

func (r *Reservation) touch() {
	r.updatedAt = time.Now().UTC()
	r.version++
}
