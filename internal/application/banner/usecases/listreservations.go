package usecases

import (
	"context"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type ListReservationsQuery struct {
	AccountSID string
	// Status filters the moderation queue; only used when AccountSID is
	// empty (admin listing).
	Status string
	Offset int
	Limit  int
}

type ListReservationsUseCase struct {
	reservationRepo banner.Repository
	accountRepo     account.Repository
	logger          logger.Interface
}

func NewListReservationsUseCase(
	reservationRepo banner.Repository,
	accountRepo account.Repository,
	logger logger.Interface,
) *ListReservationsUseCase {
	return &ListReservationsUseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		logger:          logger,
	}
}

func (uc *ListReservationsUseCase) Execute(ctx context.Context, query ListReservationsQuery) ([]*dto.ReservationDTO, int64, error) {
	if query.AccountSID != "" {
		acct, err := uc.accountRepo.GetBySID(ctx, query.AccountSID)
		if err != nil {
			return nil, 0, domainError(err)
		}
		reservations, total, err := uc.reservationRepo.ListByAccount(ctx, acct.ID(), query.Offset, query.Limit)
		if err != nil {
			return nil, 0, err
		}
		return dto.ToReservationDTOList(reservations), total, nil
	}

	status := banner.ReservationStatus(query.Status)
	if !status.IsValid() {
		return nil, 0, apperrors.NewValidationError("unknown reservation status: " + query.Status)
	}
	reservations, total, err := uc.reservationRepo.ListByStatus(ctx, status, query.Offset, query.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToReservationDTOList(reservations), total, nil
}
