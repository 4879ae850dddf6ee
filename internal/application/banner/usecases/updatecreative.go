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

type UpdateCreativeCommand struct {
	ReservationSID string
	AccountSID     string
	Title          string
	Description    string
	ImageURL       string
	TargetURL      string
	Badges         []string
}

type UpdateCreativeUseCase struct {
	reservationRepo banner.Repository
	accountRepo     account.Repository
	adCache         AdCache
	logger          logger.Interface
}

func NewUpdateCreativeUseCase(
	reservationRepo banner.Repository,
	accountRepo account.Repository,
	adCache AdCache,
	logger logger.Interface,
) *UpdateCreativeUseCase {
	return &UpdateCreativeUseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		adCache:         adCache,
		logger:          logger,
	}
}

func (uc *UpdateCreativeUseCase) Execute(ctx context.Context, cmd UpdateCreativeCommand) (*dto.ReservationDTO, error) {
	reservation, err := uc.reservationRepo.GetBySID(ctx, cmd.ReservationSID)
	if err != nil {
		return nil, domainError(err)
	}

	acct, err := uc.accountRepo.GetBySID(ctx, cmd.AccountSID)
	if err != nil {
		return nil, domainError(err)
	}
	if reservation.AccountID() != acct.ID() {
		return nil, apperrors.NewForbiddenError("reservation belongs to another account")
	}

	creative, err := banner.NewCreative(cmd.Title, cmd.Description, cmd.ImageURL, cmd.TargetURL, cmd.Badges)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := reservation.UpdateCreative(creative); err != nil {
		return nil, domainError(err)
	}

	if err := uc.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, domainError(fmt.Errorf("failed to update reservation: %w", err))
	}

	if err := uc.adCache.Invalidate(ctx, reservation.Position(), reservation.Schedule().Dates()); err != nil {
		uc.logger.Warnw("failed to invalidate ad cache",
			"error", err, "reservation_sid", cmd.ReservationSID)
	}

	uc.logger.Infow("creative updated", "reservation_sid", cmd.ReservationSID)
	return dto.ToReservationDTO(reservation), nil
}
