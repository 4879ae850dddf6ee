package usecases

import (
	"context"

	"finderads/internal/application/account/dto"
	"finderads/internal/domain/account"
	"finderads/internal/shared/logger"
)

type AuditLedgerQuery struct {
	AccountSID string
}

// AuditLedgerUseCase checks ledger conservation for one account: the signed
// sum of the journal must equal the live balance. A mismatch means a balance
// write happened outside the transactional paths.
type AuditLedgerUseCase struct {
	accountRepo account.Repository
	ledgerRepo  account.LedgerRepository
	logger      logger.Interface
}

func NewAuditLedgerUseCase(
	accountRepo account.Repository,
	ledgerRepo account.LedgerRepository,
	logger logger.Interface,
) *AuditLedgerUseCase {
	return &AuditLedgerUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

func (uc *AuditLedgerUseCase) Execute(ctx context.Context, query AuditLedgerQuery) (*dto.LedgerAuditDTO, error) {
	acct, err := uc.accountRepo.GetBySID(ctx, query.AccountSID)
	if err != nil {
		return nil, domainError(err)
	}

	sum, err := uc.ledgerRepo.SumByAccount(ctx, acct.ID())
	if err != nil {
		return nil, err
	}

	consistent := sum == acct.Credits()
	if !consistent {
		uc.logger.Errorw("ledger conservation violated",
			"account_sid", acct.SID(), "balance", acct.Credits(), "journal_sum", sum)
	}

	return &dto.LedgerAuditDTO{
		AccountSID: acct.SID(),
		Balance:    acct.Credits(),
		JournalSum: sum,
		Consistent: consistent,
	}, nil
}
