package usecases

import (
	"context"

	"finderads/internal/application/account/dto"
	"finderads/internal/domain/account"
	"finderads/internal/shared/logger"
)

type GetAccountQuery struct {
	AccountSID string
}

type GetAccountUseCase struct {
	accountRepo account.Repository
	logger      logger.Interface
}

func NewGetAccountUseCase(accountRepo account.Repository, logger logger.Interface) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, query GetAccountQuery) (*dto.AccountDTO, error) {
	acct, err := uc.accountRepo.GetBySID(ctx, query.AccountSID)
	if err != nil {
		return nil, domainError(err)
	}
	return dto.ToAccountDTO(acct), nil
}
