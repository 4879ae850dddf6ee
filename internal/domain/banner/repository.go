package banner

import "context"

// Repository is the persistence port for reservations and the slot index.
//
// The slot index is the (position, date) -> reservation mapping backed by a
// unique constraint. Double-booking is rejected by the constraint at commit
// time, not by a read-then-write check, so two racing bookings of the same
// slot can never both succeed.
type Repository interface {
	// Create inserts a new reservation.
	Create(ctx context.Context, r *Reservation) error

	// Update persists aggregate changes. Honors an open transaction in ctx.
	Update(ctx context.Context, r *Reservation) error

	// Delete removes a reservation and its slot-index rows. Honors an open
	// transaction in ctx.
	Delete(ctx context.Context, reservationID uint) error

	// GetByID retrieves a reservation by numeric ID.
	GetByID(ctx context.Context, reservationID uint) (*Reservation, error)

	// GetBySID retrieves a reservation by its public short ID.
	GetBySID(ctx context.Context, sid string) (*Reservation, error)

	// ListByAccount returns an account's reservations, newest first.
	ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*Reservation, int64, error)

	// ListByStatus returns reservations in a given validation state,
	// oldest first (moderation queue order).
	ListByStatus(ctx context.Context, status ReservationStatus, offset, limit int) ([]*Reservation, int64, error)

	// ClaimSlots inserts one slot-index row per date for the reservation.
	// Returns ErrSlotAlreadyBooked when any date is already held for the
	// position. Honors an open transaction in ctx.
	ClaimSlots(ctx context.Context, reservationID uint, position Position, dates []Date) error

	// ReleaseSlots removes every slot-index row of the reservation. Honors
	// an open transaction in ctx.
	ReleaseSlots(ctx context.Context, reservationID uint) error

	// BookedDates returns the claimed dates for a position within
	// [from, to], inclusive, regardless of the holding reservation's
	// active flag.
	BookedDates(ctx context.Context, position Position, from, to Date) ([]Date, error)

	// IsBooked reports whether a (position, date) slot is claimed.
	IsBooked(ctx context.Context, position Position, date Date) (bool, error)

	// FindServable returns the approved reservations holding the slot for
	// the given date, most recently validated first. With slot uniqueness
	// intact the result has at most one element for an active holder;
	// callers treat extra matches as an integrity violation.
	FindServable(ctx context.Context, position Position, date Date) ([]*Reservation, error)
}
