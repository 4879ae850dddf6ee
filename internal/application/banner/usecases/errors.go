package usecases

import (
	"errors"

	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	apperrors "finderads/internal/shared/errors"
)

// domainError translates domain sentinels into the error kinds the API
// exposes. Errors that already carry a kind pass through; anything
// unrecognized stays opaque and surfaces as an internal error.
func domainError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, banner.ErrReservationNotFound):
		return apperrors.Wrap(apperrors.NewNotFoundError("reservation not found"), err)
	case errors.Is(err, banner.ErrNotValidated):
		return apperrors.Wrap(apperrors.NewNotValidatedError("reservation has not been validated"), err)
	case errors.Is(err, banner.ErrSlotAlreadyBooked):
		return apperrors.Wrap(apperrors.NewSlotAlreadyBookedError("one or more dates are already booked"), err)
	case errors.Is(err, banner.ErrStaleReservation):
		return apperrors.Wrap(apperrors.NewConflictError("reservation was modified concurrently, retry"), err)
	case errors.Is(err, banner.ErrAlreadyDecided),
		errors.Is(err, banner.ErrRejectedTerminal):
		return apperrors.Wrap(apperrors.NewConflictError(err.Error()), err)
	case errors.Is(err, banner.ErrPastDate),
		errors.Is(err, banner.ErrNoDates),
		errors.Is(err, banner.ErrAccountRequired),
		errors.Is(err, banner.ErrCreativeTitleRequired),
		errors.Is(err, banner.ErrTooManyBadges):
		return apperrors.Wrap(apperrors.NewValidationError(err.Error()), err)
	case errors.Is(err, account.ErrAccountNotFound):
		return apperrors.Wrap(apperrors.NewNotFoundError("account not found"), err)
	case errors.Is(err, account.ErrInsufficientCredits):
		return apperrors.Wrap(apperrors.NewInsufficientCreditsError("not enough credits for this booking"), err)
	case errors.Is(err, account.ErrAccountSuspended):
		return apperrors.Wrap(apperrors.NewForbiddenError("account is suspended"), err)
	}
	return err
}
