package usecases

import (
	"context"
	"fmt"

	"finderads/internal/domain/account"
	"finderads/internal/shared/logger"
)

type IssueAPIKeyCommand struct {
	AccountSID string
}

type IssueAPIKeyResult struct {
	// PlainKey is shown to the caller exactly once; only the hash is stored.
	PlainKey string `json:"api_key"`
}

// APIKeyHasher generates and hashes account API keys.
type APIKeyHasher interface {
	GenerateKey() (string, error)
	Hash(key string) (string, error)
	Verify(key, hash string) error
}

type IssueAPIKeyUseCase struct {
	accountRepo account.Repository
	hasher      APIKeyHasher
	logger      logger.Interface
}

func NewIssueAPIKeyUseCase(accountRepo account.Repository, hasher APIKeyHasher, logger logger.Interface) *IssueAPIKeyUseCase {
	return &IssueAPIKeyUseCase{
		accountRepo: accountRepo,
		hasher:      hasher,
		logger:      logger,
	}
}

// Execute issues a fresh API key, replacing any previous one.
func (uc *IssueAPIKeyUseCase) Execute(ctx context.Context, cmd IssueAPIKeyCommand) (*IssueAPIKeyResult, error) {
	acct, err := uc.accountRepo.GetBySID(ctx, cmd.AccountSID)
	if err != nil {
		return nil, domainError(err)
	}

	plain, err := uc.hasher.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}
	hash, err := uc.hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to hash api key: %w", err)
	}

	acct.SetAPIKeyHash(hash)
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to store api key: %w", err)
	}

	uc.logger.Infow("api key issued", "account_sid", cmd.AccountSID)
	return &IssueAPIKeyResult{PlainKey: plain}, nil
}
