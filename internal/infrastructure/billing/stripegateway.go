package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"finderads/internal/shared/biztime"
)

// Event is the subset of a Stripe webhook event the credit ledger consumes.
type Event struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`
	Data     struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// CheckoutSession carries the fields of a completed checkout relevant to
// crediting an account.
type CheckoutSession struct {
	ID          string            `json:"id"`
	Customer    string            `json:"customer"`
	Metadata    map[string]string `json:"metadata"`
	AmountTotal int64             `json:"amount_total"`
}

// Subscription carries the fields of a subscription lifecycle event.
type Subscription struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

// Invoice carries the fields of a paid invoice, used for recurring credit
// grants on subscription renewals.
type Invoice struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	AmountPaid   int64             `json:"amount_paid"`
	Metadata     map[string]string `json:"metadata"`
}

// Event types the webhook handler acts on.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventInvoicePaid         = "invoice.paid"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

var (
	ErrMissingSignature = fmt.Errorf("missing signature header")
	ErrInvalidSignature = fmt.Errorf("invalid signature")
	ErrStaleTimestamp   = fmt.Errorf("signature timestamp outside tolerance")
)

// WebhookVerifier checks Stripe-Signature headers. The header format is
// "t=<unix>,v1=<hex hmac>[,v1=...]"; the signed payload is "<t>.<body>".
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
}

func NewWebhookVerifier(secret string, toleranceSeconds int) *WebhookVerifier {
	if toleranceSeconds <= 0 {
		toleranceSeconds = 300
	}
	return &WebhookVerifier{
		secret:    []byte(secret),
		tolerance: time.Duration(toleranceSeconds) * time.Second,
	}
}

// Verify checks the signature header against the raw request body and returns
// the parsed event on success.
func (v *WebhookVerifier) Verify(body []byte, header string) (*Event, error) {
	if header == "" {
		return nil, ErrMissingSignature
	}

	timestamp, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return nil, err
	}

	age := biztime.NowUTC().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return nil, ErrStaleTimestamp
	}

	expected := v.sign(timestamp, body)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook event: %w", err)
	}
	if event.ID == "" || event.Type == "" {
		return nil, fmt.Errorf("webhook event missing id or type")
	}
	return &event, nil
}

// SignHeader produces a valid signature header for the body. Test helper and
// CLI replay tool both use it.
func (v *WebhookVerifier) SignHeader(body []byte, at time.Time) string {
	timestamp := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", timestamp, v.sign(timestamp, body))
}

func (v *WebhookVerifier) sign(timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}

// ParseCheckoutSession decodes the event payload of a completed checkout.
func ParseCheckoutSession(event *Event) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session: %w", err)
	}
	return &session, nil
}

// ParseSubscription decodes the event payload of a subscription event.
func ParseSubscription(event *Event) (*Subscription, error) {
	var sub Subscription
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return nil, fmt.Errorf("failed to parse subscription: %w", err)
	}
	return &sub, nil
}

// ParseInvoice decodes the event payload of an invoice event.
func ParseInvoice(event *Event) (*Invoice, error) {
	var inv Invoice
	if err := json.Unmarshal(event.Data.Object, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse invoice: %w", err)
	}
	return &inv, nil
}
