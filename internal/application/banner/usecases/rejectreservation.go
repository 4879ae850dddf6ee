package usecases

import (
	"context"
	"fmt"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/banner"
	"finderads/internal/shared/logger"
)

type RejectReservationCommand struct {
	ReservationSID string
}

// RejectReservationUseCase terminally rejects a pending reservation. Pending
// reservations hold no dates and no credits, so there is nothing to refund or
// release.
type RejectReservationUseCase struct {
	reservationRepo banner.Repository
	logger          logger.Interface
}

func NewRejectReservationUseCase(reservationRepo banner.Repository, logger logger.Interface) *RejectReservationUseCase {
	return &RejectReservationUseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

func (uc *RejectReservationUseCase) Execute(ctx context.Context, cmd RejectReservationCommand) (*dto.ReservationDTO, error) {
	reservation, err := uc.reservationRepo.GetBySID(ctx, cmd.ReservationSID)
	if err != nil {
		return nil, domainError(err)
	}

	if err := reservation.Reject(); err != nil {
		return nil, domainError(err)
	}

	if err := uc.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, domainError(fmt.Errorf("failed to update reservation: %w", err))
	}

	uc.logger.Infow("reservation rejected", "reservation_sid", cmd.ReservationSID)
	return dto.ToReservationDTO(reservation), nil
}
