package usecases

import (
	"errors"

	"finderads/internal/domain/account"
	apperrors "finderads/internal/shared/errors"
)

// domainError translates account sentinels into the error kinds the API
// exposes. Errors that already carry a kind pass through.
func domainError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		return apperrors.Wrap(apperrors.NewNotFoundError("account not found"), err)
	case errors.Is(err, account.ErrInsufficientCredits):
		return apperrors.Wrap(apperrors.NewInsufficientCreditsError("adjustment exceeds the available balance"), err)
	case errors.Is(err, account.ErrAccountSuspended):
		return apperrors.Wrap(apperrors.NewForbiddenError("account is suspended"), err)
	case errors.Is(err, account.ErrDuplicateReference):
		return apperrors.Wrap(apperrors.NewConflictError("ledger reference already recorded"), err)
	case errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrEmailRequired):
		return apperrors.Wrap(apperrors.NewValidationError(err.Error()), err)
	}
	return err
}
