package usecases

import (
	"context"
	"fmt"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/account"
	"finderads/internal/domain/banner"
	"finderads/internal/shared/biztime"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type BookDatesCommand struct {
	ReservationSID string
	AccountSID     string
	Dates          []string
}

// BookDatesUseCase claims a batch of dates for an approved reservation and
// debits the cost in the same transaction. Either every side effect lands
// (slot rows, balance decrement, journal entry, updated schedule) or none do:
// a lost race on any slot or an insufficient balance rolls the whole batch
// back.
type BookDatesUseCase struct {
	reservationRepo banner.Repository
	accountRepo     account.Repository
	ledgerRepo      account.LedgerRepository
	tx              TransactionRunner
	adCache         AdCache
	maxBatchDays    int
	logger          logger.Interface
}

func NewBookDatesUseCase(
	reservationRepo banner.Repository,
	accountRepo account.Repository,
	ledgerRepo account.LedgerRepository,
	tx TransactionRunner,
	adCache AdCache,
	maxBatchDays int,
	logger logger.Interface,
) *BookDatesUseCase {
	return &BookDatesUseCase{
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		ledgerRepo:      ledgerRepo,
		tx:              tx,
		adCache:         adCache,
		maxBatchDays:    maxBatchDays,
		logger:          logger,
	}
}

func (uc *BookDatesUseCase) Execute(ctx context.Context, cmd BookDatesCommand) (*dto.BookDatesResultDTO, error) {
	dates, err := banner.ParseDates(cmd.Dates)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if uc.maxBatchDays > 0 && len(dates) > uc.maxBatchDays {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("a single booking may claim at most %d dates", uc.maxBatchDays))
	}

	acct, err := uc.accountRepo.GetBySID(ctx, cmd.AccountSID)
	if err != nil {
		return nil, domainError(err)
	}
	if acct.Status() == account.AccountStatusSuspended {
		return nil, domainError(account.ErrAccountSuspended)
	}

	var reservation *banner.Reservation
	var cost int

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		reservation, err = uc.reservationRepo.GetBySID(txCtx, cmd.ReservationSID)
		if err != nil {
			return err
		}
		if reservation.AccountID() != acct.ID() {
			return apperrors.NewForbiddenError("reservation belongs to another account")
		}

		today, err := banner.ParseDate(biztime.TodayString())
		if err != nil {
			return fmt.Errorf("failed to resolve business date: %w", err)
		}

		cost, err = reservation.BookDates(dates, today)
		if err != nil {
			return err
		}

		if err := uc.reservationRepo.ClaimSlots(txCtx, reservation.ID(), reservation.Position(), dates); err != nil {
			return err
		}

		if err := uc.accountRepo.DebitCredits(txCtx, acct.ID(), cost); err != nil {
			return err
		}

		entry, err := account.NewLedgerEntry(acct.ID(), account.EntryKindDebit, cost)
		if err != nil {
			return err
		}
		entry = entry.WithReservation(reservation.ID()).
			WithDescription(fmt.Sprintf("booked %d dates on %s", len(dates), reservation.Position().String()))
		if err := uc.ledgerRepo.Append(txCtx, entry); err != nil {
			return err
		}

		return uc.reservationRepo.Update(txCtx, reservation)
	})
	if err != nil {
		uc.logger.Warnw("booking failed",
			"error", err,
			"reservation_sid", cmd.ReservationSID,
			"account_sid", cmd.AccountSID,
			"dates", len(dates),
		)
		return nil, domainError(err)
	}

	// Active reservations start serving on the new dates immediately.
	if err := uc.adCache.Invalidate(ctx, reservation.Position(), dates); err != nil {
		uc.logger.Warnw("failed to invalidate ad cache", "error", err, "reservation_sid", cmd.ReservationSID)
	}

	updated, err := uc.accountRepo.GetByID(ctx, acct.ID())
	if err != nil {
		return nil, domainError(err)
	}

	uc.logger.Infow("dates booked",
		"reservation_sid", cmd.ReservationSID,
		"account_sid", cmd.AccountSID,
		"position", reservation.Position().String(),
		"dates", len(dates),
		"cost", cost,
		"balance", updated.Credits(),
	)

	return &dto.BookDatesResultDTO{
		Reservation: dto.ToReservationDTO(reservation),
		Cost:        cost,
		Balance:     updated.Credits(),
	}, nil
}
