// Package account holds the advertiser credit account aggregate and its
// append-only ledger journal. The balance invariant (credits >= 0) is enforced
// here for in-memory mutations and again by the repository's conditional
// decrement, which is what actually guards against concurrent overdraw.
package account

import (
	"strings"
	"time"

	"finderads/internal/shared/id"
)

// ProAccount is the credit account aggregate root, keyed by the advertiser's
// email. It holds the integer credit balance the reservation workflow debits
// and refunds, plus the Stripe linkage used by the billing webhook.
type ProAccount struct {
	id                   uint
	sid                  string
	userEmail            string
	credits              int
	planType             PlanType
	status               AccountStatus
	stripeCustomerID     *string
	stripeSubscriptionID *string
	apiKeyHash           string
	createdAt            time.Time
	updatedAt            time.Time
	version              int
}

// NewProAccount creates an active free-tier account with a zero balance.
func NewProAccount(userEmail string) (*ProAccount, error) {
	userEmail = strings.TrimSpace(strings.ToLower(userEmail))
	if userEmail == "" {
		return nil, ErrEmailRequired
	}

	now := time.Now().UTC()
	return &ProAccount{
		sid:       id.MustGenerateWithPrefix(id.PrefixAccount, id.DefaultLength),
		userEmail: userEmail,
		credits:   0,
		planType:  PlanTypeFree,
		status:    AccountStatusActive,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructProAccount rebuilds an account from persistence.
func ReconstructProAccount(
	accountID uint,
	sid string,
	userEmail string,
	credits int,
	planType PlanType,
	status AccountStatus,
	stripeCustomerID *string,
	stripeSubscriptionID *string,
	apiKeyHash string,
	createdAt, updatedAt time.Time,
	version int,
) *ProAccount {
	return &ProAccount{
		id:                   accountID,
		sid:                  sid,
		userEmail:            userEmail,
		credits:              credits,
		planType:             planType,
		status:               status,
		stripeCustomerID:     stripeCustomerID,
		stripeSubscriptionID: stripeSubscriptionID,
		apiKeyHash:           apiKeyHash,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		version:              version,
	}
}

func (a *ProAccount) ID() uint                      { return a.id }
func (a *ProAccount) SID() string                   { return a.sid }
func (a *ProAccount) UserEmail() string             { return a.userEmail }
func (a *ProAccount) Credits() int                  { return a.credits }
func (a *ProAccount) PlanType() PlanType            { return a.planType }
func (a *ProAccount) Status() AccountStatus         { return a.status }
func (a *ProAccount) StripeCustomerID() *string     { return a.stripeCustomerID }
func (a *ProAccount) StripeSubscriptionID() *string { return a.stripeSubscriptionID }
func (a *ProAccount) APIKeyHash() string            { return a.apiKeyHash }
func (a *ProAccount) CreatedAt() time.Time          { return a.createdAt }
func (a *ProAccount) UpdatedAt() time.Time          { return a.updatedAt }
func (a *ProAccount) Version() int                  { return a.version }

// SetID is called by the persistence layer after insert.
func (a *ProAccount) SetID(accountID uint) {
	if a.id == 0 {
		a.id = accountID
	}
}

// SetAPIKeyHash stores the bcrypt hash of the advertiser API key.
func (a *ProAccount) SetAPIKeyHash(hash string) {
	a.apiKeyHash = hash
	a.touch()
}

// Credit adds purchased or refunded credits.
func (a *ProAccount) Credit(amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.credits += amount
	a.touch()
	return nil
}

// Debit removes credits for a booking. The authoritative race-safe check lives
// in the repository's conditional decrement; this guards single-process paths
// and keeps the aggregate consistent.
func (a *ProAccount) Debit(amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.status == AccountStatusSuspended {
		return ErrAccountSuspended
	}
	if a.credits < amount {
		return ErrInsufficientCredits
	}
	a.credits -= amount
	a.touch()
	return nil
}

// AttachStripeCustomer links the Stripe customer created at first checkout.
func (a *ProAccount) AttachStripeCustomer(customerID string) {
	if customerID != "" {
		a.stripeCustomerID = &customerID
		a.touch()
	}
}

// ChangePlan records a subscription upgrade or change.
func (a *ProAccount) ChangePlan(plan PlanType, stripeSubscriptionID string) error {
	if !plan.IsValid() {
		return ErrInvalidPlanType(plan)
	}
	a.planType = plan
	if stripeSubscriptionID != "" {
		a.stripeSubscriptionID = &stripeSubscriptionID
	}
	if a.status == AccountStatusCanceled {
		a.status = AccountStatusActive
	}
	a.touch()
	return nil
}

// DowngradeToFree handles subscription deletion. Remaining credits are kept;
// only the recurring tier is dropped.
func (a *ProAccount) DowngradeToFree() {
	a.planType = PlanTypeFree
	a.stripeSubscriptionID = nil
	a.status = AccountStatusCanceled
	a.touch()
}

// Suspend blocks further debits without touching the balance.
func (a *ProAccount) Suspend() {
	a.status = AccountStatusSuspended
	a.touch()
}

// Reactivate lifts a suspension.
func (a *ProAccount) Reactivate() {
	a.status = AccountStatusActive
	a.touch()
}

func (a *ProAccount) touch() {
	a.updatedAt = time.Now().UTC()
	a.version++
}
