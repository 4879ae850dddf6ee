package billing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func testEventBody(id string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "checkout.session.completed",
		"created": 1756600000,
		"data": {"object": {"id": "cs_123", "customer": "cus_abc", "metadata": {"credits": "50"}}}
	}`, id))
}

func TestWebhookVerifier_Verify(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 300)
	body := testEventBody("evt_1")

	t.Run("valid signature", func(t *testing.T) {
		header := verifier.SignHeader(body, time.Now())

		event, err := verifier.Verify(body, header)
		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, EventCheckoutCompleted, event.Type)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := verifier.Verify(body, "")
		assert.ErrorIs(t, err, ErrMissingSignature)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewWebhookVerifier("whsec_other", 300)
		header := other.SignHeader(body, time.Now())

		_, err := verifier.Verify(body, header)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered body", func(t *testing.T) {
		header := verifier.SignHeader(body, time.Now())

		_, err := verifier.Verify(testEventBody("evt_2"), header)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		header := verifier.SignHeader(body, time.Now().Add(-10*time.Minute))

		_, err := verifier.Verify(body, header)
		assert.ErrorIs(t, err, ErrStaleTimestamp)
	})

	t.Run("future timestamp outside tolerance", func(t *testing.T) {
		header := verifier.SignHeader(body, time.Now().Add(10*time.Minute))

		_, err := verifier.Verify(body, header)
		assert.ErrorIs(t, err, ErrStaleTimestamp)
	})

	t.Run("garbage header", func(t *testing.T) {
		_, err := verifier.Verify(body, "t=abc,v1=")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("extra v1 entries still match", func(t *testing.T) {
		header := verifier.SignHeader(body, time.Now())
		header = "v1=deadbeef," + header

		event, err := verifier.Verify(body, header)
		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
	})
}

func TestParseCheckoutSession(t *testing.T) {
	verifier := NewWebhookVerifier(testSecret, 300)
	body := testEventBody("evt_parse")
	header := verifier.SignHeader(body, time.Now())

	event, err := verifier.Verify(body, header)
	require.NoError(t, err)

	session, err := ParseCheckoutSession(event)
	require.NoError(t, err)
	assert.Equal(t, "cus_abc", session.Customer)
	assert.Equal(t, "50", session.Metadata["credits"])
}
