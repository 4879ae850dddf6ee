// Package id generates URL-safe short identifiers for API-facing resources.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62: 0-9, A-Z, a-z.
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default random-part length.
	DefaultLength = 12
)

// Stripe-style prefixes per entity type.
const (
	PrefixAccount     = "acct"
	PrefixReservation = "bnr"
)

// Generate returns a cryptographically random base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// MustGenerate returns a random short ID and panics on entropy failure.
func MustGenerate(length int) string {
	s, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return s
}

// GenerateWithPrefix returns an ID of the form "prefix_random".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	s, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, s), nil
}

// MustGenerateWithPrefix returns a prefixed ID and panics on entropy failure.
func MustGenerateWithPrefix(prefix string, length int) string {
	s, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidatePrefix checks that sid is a well-formed prefixed ID for the given
// entity prefix.
func ValidatePrefix(sid, prefix string) error {
	if !strings.HasPrefix(sid, prefix+"_") || len(sid) <= len(prefix)+1 {
		return fmt.Errorf("invalid ID %q: expected prefix %q", sid, prefix)
	}
	return nil
}
