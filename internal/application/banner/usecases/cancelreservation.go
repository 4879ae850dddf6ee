package usecases

import (
	"context"
	"fmt"

	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type CancelReservationCommand struct {
	ReservationSID string
	// AccountSID is the caller's account for ownership checks. Empty means
	// the caller is an admin.
	AccountSID string
}

// CancelReservationUseCase removes a reservation: refund the full
// credits_used, journal the refund, release every claimed slot and delete the
// record, all in one transaction. The refund and the removal are never
// exposed as separate steps.
type CancelReservationUseCase struct {
	reservationRepo banner.Repository
	accountRepo     account.Repository
	ledgerRepo      account.LedgerRepository
	tx              TransactionRunner
	adCache         AdCache
	logger          logger.Interface
}

func NewCancelReservationUseCase(
	reservationRepo banner.Repository,
	accountRepo account.Repository,
	ledgerRepo account.LedgerRepository,
	tx TransactionRunner,
	adCache AdCache,
	logger logger.Interface,
) *CancelReservationUseCase {
	return &CancelReservationUseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		ledgerRepo:      ledgerRepo,
		tx:              tx,
		adCache:         adCache,
		logger:          logger,
	}
}

func (uc *CancelReservationUseCase) Execute(ctx context.Context, cmd CancelReservationCommand) error {
	var position banner.Position
	var dates []banner.Date
	var refunded int

	err := uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		reservation, err := uc.reservationRepo.GetBySID(txCtx, cmd.ReservationSID)
		if err != nil {
			return err
		}

		if cmd.AccountSID != "" {
			acct, err := uc.accountRepo.GetBySID(txCtx, cmd.AccountSID)
			if err != nil {
				return err
			}
			if reservation.AccountID() != acct.ID() {
				return apperrors.NewForbiddenError("reservation belongs to another account")
			}
		}

		position = reservation.Position()
		dates = reservation.Schedule().Dates()
		refunded = reservation.CreditsUsed()

		if refunded > 0 {
			if err := uc.accountRepo.CreditCredits(txCtx, reservation.AccountID(), refunded); err != nil {
				return err
			}

			entry, err := account.NewLedgerEntry(reservation.AccountID(), account.EntryKindRefund, refunded)
			if err != nil {
				return err
			}
			entry = entry.WithReservation(reservation.ID()).
				WithDescription(fmt.Sprintf("cancelled reservation %s", reservation.SID()))
			if err := uc.ledgerRepo.Append(txCtx, entry); err != nil {
				return err
			}
		}

		if err := uc.reservationRepo.ReleaseSlots(txCtx, reservation.ID()); err != nil {
			return err
		}
		return uc.reservationRepo.Delete(txCtx, reservation.ID())
	})
	if err != nil {
		uc.logger.Warnw("cancellation failed", "error", err, "reservation_sid", cmd.ReservationSID)
		return domainError(err)
	}

	if len(dates) > 0 {
		if err := uc.adCache.Invalidate(ctx, position, dates); err != nil {
			uc.logger.Warnw("failed to invalidate ad cache", "error", err, "reservation_sid", cmd.ReservationSID)
		}
	}

	uc.logger.Infow("reservation cancelled",
		"reservation_sid", cmd.ReservationSID,
		"refunded", refunded,
		"released_dates", len(dates),
	)
	return nil
}
