package banner

import (
	"errors"
	"fmt"
)

var (
	// ErrReservationNotFound is returned when no reservation matches.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrNotValidated is returned when dates are booked against a
	// reservation that has not passed admin validation.
	ErrNotValidated = errors.New("reservation is not validated")

	// ErrSlotAlreadyBooked is returned when a (position, date) slot is held
	// by another reservation.
	ErrSlotAlreadyBooked = errors.New("slot already booked")

	// ErrPastDate is returned when a booking includes a date before today.
	ErrPastDate = errors.New("cannot book a past date")

	// ErrStaleReservation is returned when a write loses an optimistic
	// locking race: the stored version moved past the loaded one.
	ErrStaleReservation = errors.New("reservation was modified concurrently")

	// ErrAlreadyDecided is returned when an admin approves or rejects a
	// reservation that already left the pending state.
	ErrAlreadyDecided = errors.New("reservation already approved or rejected")

	// ErrRejectedTerminal is returned for any mutation of a rejected
	// reservation.
	ErrRejectedTerminal = errors.New("reservation was rejected")

	// ErrNoDates is returned for an empty booking batch.
	ErrNoDates = errors.New("at least one date is required")

	// ErrAccountRequired is returned when a reservation is created without
	// an owning account.
	ErrAccountRequired = errors.New("owning account is required")

	// ErrCreativeTitleRequired is returned for a creative without a title.
	ErrCreativeTitleRequired = errors.New("creative title is required")

	// ErrTooManyBadges is returned when a creative exceeds MaxBadges labels.
	ErrTooManyBadges = fmt.Errorf("at most %d badges are allowed", MaxBadges)
)

// ErrUnknownPosition reports a position key outside the catalog.
func ErrUnknownPosition(key string) error {
	return fmt.Errorf("unknown position key: %q", key)
}

// ErrInvalidDate reports a malformed calendar date.
func ErrInvalidDate(raw string) error {
	return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
}

// ErrDuplicateDate reports a date repeated within one booking batch.
func ErrDuplicateDate(raw string) error {
	return fmt.Errorf("duplicate date in batch: %s", raw)
}

// ErrInvalidCreativeURL reports a creative URL that is not absolute http(s).
func ErrInvalidCreativeURL(field, raw string) error {
	return fmt.Errorf("invalid %s: %q must be an absolute http(s) URL", field, raw)
}
