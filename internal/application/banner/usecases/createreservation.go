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

type CreateReservationCommand struct {
	AccountSID  string
	Position    string
	Title       string
	Description string
	ImageURL    string
	TargetURL   string
	Badges      []string
}

type CreateReservationUseCase struct {
	reservationRepo banner.Repository
	accountRepo     account.Repository
	logger          logger.Interface
}

func NewCreateReservationUseCase(
	reservationRepo banner.Repository,
	accountRepo account.Repository,
	logger logger.Interface,
) *CreateReservationUseCase {
	return &CreateReservationUseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		logger:          logger,
	}
}

func (uc *CreateReservationUseCase) Execute(ctx context.Context, cmd CreateReservationCommand) (*dto.ReservationDTO, error) {
	acct, err := uc.accountRepo.GetBySID(ctx, cmd.AccountSID)
	if err != nil {
		uc.logger.Errorw("failed to get account", "error", err, "account_sid", cmd.AccountSID)
		return nil, domainError(err)
	}

	position, err := banner.ParsePosition(cmd.Position)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	creative, err := banner.NewCreative(cmd.Title, cmd.Description, cmd.ImageURL, cmd.TargetURL, cmd.Badges)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	reservation, err := banner.NewReservation(acct.ID(), position, creative)
	if err != nil {
		return nil, domainError(err)
	}

	if err := uc.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	uc.logger.Infow("reservation created",
		"reservation_sid", reservation.SID(),
		"account_sid", cmd.AccountSID,
		"position", position.String(),
	)

	result := dto.ToReservationDTO(reservation)
	result.AccountSID = acct.SID()
	return result, nil
}
