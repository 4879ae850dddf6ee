package usecases

import (
	"context"

	"finderads/internal/application/account/dto"
	"finderads/internal/domain/account"
	"finderads/internal/shared/logger"
)

type ListLedgerQuery struct {
	AccountSID string
	Offset     int
	Limit      int
}

type ListLedgerUseCase struct {
	accountRepo account.Repository
	ledgerRepo  account.LedgerRepository
	logger      logger.Interface
}

func NewListLedgerUseCase(
	accountRepo account.Repository,
	ledgerRepo account.LedgerRepository,
	logger logger.Interface,
) *ListLedgerUseCase {
	return &ListLedgerUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

func (uc *ListLedgerUseCase) Execute(ctx context.Context, query ListLedgerQuery) ([]*dto.LedgerEntryDTO, int64, error) {
	acct, err := uc.accountRepo.GetBySID(ctx, query.AccountSID)
	if err != nil {
		return nil, 0, domainError(err)
	}

	entries, total, err := uc.ledgerRepo.ListByAccount(ctx, acct.ID(), query.Offset, query.Limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToLedgerEntryDTOList(entries), total, nil
}
