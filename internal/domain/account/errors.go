package account

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientCredits is returned when a debit exceeds the balance.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrAccountSuspended is returned when a suspended account attempts a
	// balance-changing operation.
	ErrAccountSuspended = errors.New("account is suspended")

	// ErrInvalidAmount is returned for zero or negative credit amounts.
	ErrInvalidAmount = errors.New("credit amount must be positive")

	// ErrDuplicateReference is returned when a ledger entry reuses an
	// external reference (webhook replay).
	ErrDuplicateReference = errors.New("ledger reference already recorded")

	// ErrEmailRequired is returned when an account is created without an
	// owner email.
	ErrEmailRequired = errors.New("account email is required")
)

// ErrInvalidPlanType reports an unknown plan tier.
func ErrInvalidPlanType(p PlanType) error {
	return fmt.Errorf("invalid plan type: %s", p)
}
