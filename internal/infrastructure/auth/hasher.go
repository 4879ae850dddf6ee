package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptAPIKeyHasher hashes account API keys for storage. Plaintext keys are
// shown once at creation and never persisted.
type BcryptAPIKeyHasher struct {
	cost int
}

func NewBcryptAPIKeyHasher(cost int) *BcryptAPIKeyHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptAPIKeyHasher{cost: cost}
}

// GenerateKey returns a new random API key in plaintext.
func (h *BcryptAPIKeyHasher) GenerateKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}
	return "fa_" + base64.RawURLEncoding.EncodeToString(raw), nil
}

func (h *BcryptAPIKeyHasher) Hash(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate key hash: %w", err)
	}
	return string(hash), nil
}

// Verify returns a generic error regardless of the failure cause so callers
// cannot distinguish a wrong key from a malformed hash.
func (h *BcryptAPIKeyHasher) Verify(key, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return fmt.Errorf("api key verification failed")
	}
	return nil
}
