package usecases

import (
	"context"
	"errors"
	"fmt"

	"finderads/internal/application/account/dto"
	"finderads/internal/domain/account"
	"finderads/internal/shared/logger"
)

type RegisterAccountCommand struct {
	UserEmail string
}

// RegisterAccountUseCase creates a credit account on first contact: first
// purchase, first tool submission, or explicit signup. Registration is
// idempotent per email.
type RegisterAccountUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewRegisterAccountUseCase(accountRepo account.Repository, logger logger.Interface) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (uc *RegisterAccountUseCase) Execute(ctx context.Context, cmd RegisterAccountCommand) (*dto.AccountDTO, error) {
	existing, err := uc.accountRepo.GetByEmail(ctx, cmd.UserEmail)
	if err == nil {
		return dto.ToAccountDTO(existing), nil
	}
	if !errors.Is(err, account.ErrAccountNotFound) {
		return nil, err
	}

	acct, err := account.NewProAccount(cmd.UserEmail)
	if err != nil {
		return nil, domainError(err)
	}

	if err := uc.accountRepo.Create(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	uc.logger.Infow("account registered", "account_sid", acct.SID(), "email", acct.UserEmail())
	return dto.ToAccountDTO(acct), nil
}
