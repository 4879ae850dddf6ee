package usecases

import (
	"context"
	"fmt"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/banner"
	"finderads/internal/shared/logger"
)

type ApproveReservationCommand struct {
	ReservationSID string
}

// ApproveReservationUseCase validates a pending reservation. Approval also
// switches the reservation on and drops any cached empty-slot markers for its
// dates so the public path picks it up without waiting for expiry.
type ApproveReservationUseCase struct {
	reservationRepo banner.Repository
	adCache         AdCache
	logger          logger.Interface
}

func NewApproveReservationUseCase(
	reservationRepo banner.Repository,
	adCache AdCache,
	logger logger.Interface,
) *ApproveReservationUseCase {
	return &ApproveReservationUseCase{
		reservationRepo: reservationRepo,
		adCache:         adCache,
		logger:          logger,
	}
}

func (uc *ApproveReservationUseCase) Execute(ctx context.Context, cmd ApproveReservationCommand) (*dto.ReservationDTO, error) {
	reservation, err := uc.reservationRepo.GetBySID(ctx, cmd.ReservationSID)
	if err != nil {
		return nil, domainError(err)
	}

	if err := reservation.Approve(); err != nil {
		return nil, domainError(err)
	}

	if err := uc.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, domainError(fmt.Errorf("failed to update reservation: %w", err))
	}

	uc.invalidateCache(ctx, reservation)

	uc.logger.Infow("reservation approved", "reservation_sid", cmd.ReservationSID)
	return dto.ToReservationDTO(reservation), nil
}

func (uc *ApproveReservationUseCase) invalidateCache(ctx context.Context, reservation *banner.Reservation) {
	dates := reservation.Schedule().Dates()
	if err := uc.adCache.Invalidate(ctx, reservation.Position(), dates); err != nil {
		uc.logger.Warnw("failed to invalidate ad cache",
			"error", err, "reservation_sid", reservation.SID())
	}
}
