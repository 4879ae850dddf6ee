package usecases

import (
	"context"
	"fmt"

	"finderads/internal/application/account/dto"
	"finderads/internal/domain/account"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type AdjustCreditsCommand struct {
	AccountSID string
	// Amount is signed: positive grants credits, negative removes them.
	Amount int
	Reason string
}

// TransactionRunner wraps a function in a database transaction carried
// through the context.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdjustCreditsUseCase applies a manual admin correction to a balance. Both
// the balance change and the adjustment journal line land in one transaction
// so the conservation audit never observes a gap.
type AdjustCreditsUseCase struct {
	accountRepo account.Repository
	ledgerRepo  account.LedgerRepository
	tx          TransactionRunner
	logger      logger.Interface
}

func NewAdjustCreditsUseCase(
	accountRepo account.Repository,
	ledgerRepo account.LedgerRepository,
	tx TransactionRunner,
	logger logger.Interface,
) *AdjustCreditsUseCase {
	return &AdjustCreditsUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (uc *AdjustCreditsUseCase) Execute(ctx context.Context, cmd AdjustCreditsCommand) (*dto.AccountDTO, error) {
	if cmd.Amount == 0 {
		return nil, apperrors.NewValidationError("adjustment amount must be non-zero")
	}
	if cmd.Reason == "" {
		return nil, apperrors.NewValidationError("adjustment reason is required")
	}

	acct, err := uc.accountRepo.GetBySID(ctx, cmd.AccountSID)
	if err != nil {
		return nil, domainError(err)
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.Amount > 0 {
			if err := uc.accountRepo.CreditCredits(txCtx, acct.ID(), cmd.Amount); err != nil {
				return err
			}
			entry, err := account.NewLedgerEntry(acct.ID(), account.EntryKindAdjustment, cmd.Amount)
			if err != nil {
				return err
			}
			return uc.ledgerRepo.Append(txCtx, entry.WithDescription(cmd.Reason))
		}

		// Removals go through the conditional decrement so an adjustment
		// can never push a balance negative.
		amount := -cmd.Amount
		if err := uc.accountRepo.DebitCredits(txCtx, acct.ID(), amount); err != nil {
			return err
		}
		entry, err := account.NewLedgerEntry(acct.ID(), account.EntryKindDebit, amount)
		if err != nil {
			return err
		}
		return uc.ledgerRepo.Append(txCtx, entry.WithDescription(cmd.Reason))
	})
	if err != nil {
		return nil, domainError(fmt.Errorf("failed to adjust credits: %w", err))
	}

	updated, err := uc.accountRepo.GetByID(ctx, acct.ID())
	if err != nil {
		return nil, domainError(err)
	}

	uc.logger.Infow("credits adjusted",
		"account_sid", cmd.AccountSID, "amount", cmd.Amount, "reason", cmd.Reason)
	return dto.ToAccountDTO(updated), nil
}
