package usecases

import (
	"context"
	"fmt"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type SetReservationActiveCommand struct {
	ReservationSID string
	// AccountSID is the caller's account for ownership checks. Empty means
	// the caller is an admin.
	AccountSID string
	Active     bool
}

// SetReservationActiveUseCase toggles public serving of an approved
// reservation. The slots stay claimed either way; toggling only affects the
// ad server read path.
type SetReservationActiveUseCase struct {
	reservationRepo banner.Repository
	accountRepo     account.Repository
	adCache         AdCache
	logger          logger.Interface
}

func NewSetReservationActiveUseCase(
	reservationRepo banner.Repository,
	accountRepo account.Repository,
	adCache AdCache,
	logger logger.Interface,
) *SetReservationActiveUseCase {
	return &SetReservationActiveUseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		adCache:         adCache,
		logger:          logger,
	}
}

func (uc *SetReservationActiveUseCase) Execute(ctx context.Context, cmd SetReservationActiveCommand) (*dto.ReservationDTO, error) {
	reservation, err := uc.reservationRepo.GetBySID(ctx, cmd.ReservationSID)
	if err != nil {
		return nil, domainError(err)
	}

	if cmd.AccountSID != "" {
		acct, err := uc.accountRepo.GetBySID(ctx, cmd.AccountSID)
		if err != nil {
			return nil, domainError(err)
		}
		if reservation.AccountID() != acct.ID() {
			return nil, apperrors.NewForbiddenError("reservation belongs to another account")
		}
	}

	if err := reservation.SetActive(cmd.Active); err != nil {
		return nil, domainError(err)
	}

	if err := uc.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, domainError(fmt.Errorf("failed to update reservation: %w", err))
	}

	if err := uc.adCache.Invalidate(ctx, reservation.Position(), reservation.Schedule().Dates()); err != nil {
		uc.logger.Warnw("failed to invalidate ad cache",
			"error", err, "reservation_sid", cmd.ReservationSID)
	}

	uc.logger.Infow("reservation serving toggled",
		"reservation_sid", cmd.ReservationSID, "active", cmd.Active)
	return dto.ToReservationDTO(reservation), nil
}
