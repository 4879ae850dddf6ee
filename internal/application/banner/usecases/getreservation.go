package usecases

import (
	"context"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type GetReservationQuery struct {
	ReservationSID string
	// AccountSID is the caller's account for ownership checks. Empty means
	// the caller is an admin.
	AccountSID string
}

type GetReservationUseCase struct {
	reservationRepo banner.Repository
	accountRepo     account.Repository
	logger          logger.Interface
}

func NewGetReservationUseCase(
	reservationRepo banner.Repository,
	accountRepo account.Repository,
	logger logger.Interface,
) *GetReservationUseCase {
	return &GetReservationUseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		logger:          logger,
	}
}

func (uc *GetReservationUseCase) Execute(ctx context.Context, query GetReservationQuery) (*dto.ReservationDTO, error) {
	reservation, err := uc.reservationRepo.GetBySID(ctx, query.ReservationSID)
	if err != nil {
		return nil, domainError(err)
	}

	if query.AccountSID != "" {
		acct, err := uc.accountRepo.GetBySID(ctx, query.AccountSID)
		if err != nil {
			return nil, domainError(err)
		}
		if reservation.AccountID() != acct.ID() {
			return nil, apperrors.NewForbiddenError("reservation belongs to another account")
		}
	}

	return dto.ToReservationDTO(reservation), nil
}
