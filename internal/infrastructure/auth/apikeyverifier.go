package auth

import (
	"context"

	"finderads/internal/domain/account"
	"finderads/internal/shared/errors"
)

// APIKeyVerifier checks a presented API key against the stored hash for an
// account. Keys are stored as bcrypt hashes only, so the caller must identify
// the account the key belongs to.
type APIKeyVerifier struct {
	accountRepo account.Repository
	hasher      *BcryptAPIKeyHasher
}

func NewAPIKeyVerifier(accountRepo account.Repository, hasher *BcryptAPIKeyHasher) *APIKeyVerifier {
	return &APIKeyVerifier{
		accountRepo: accountRepo,
		hasher:      hasher,
	}
}

// Verify returns nil when the key matches the account's stored hash. All
// failure modes collapse into one unauthorized error so callers cannot learn
// which accounts exist or hold keys.
func (v *APIKeyVerifier) Verify(ctx context.Context, accountSID, plainKey string) error {
	acct, err := v.accountRepo.GetBySID(ctx, accountSID)
	if err != nil {
		return errors.NewUnauthorizedError("invalid api key")
	}

	if acct.APIKeyHash() == "" || acct.Status() == account.AccountStatusSuspended {
		return errors.NewUnauthorizedError("invalid api key")
	}

	if err := v.hasher.Verify(plainKey, acct.APIKeyHash()); err != nil {
		return errors.NewUnauthorizedError("invalid api key")
	}

	return nil
}
