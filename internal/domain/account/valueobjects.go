package account

// PlanType is the subscription tier attached to an advertiser account. Credits
// are bought through Stripe regardless of tier; the tier only tracks the
// recurring subscription state.
type PlanType string

const (
	PlanTypeFree    PlanType = "free"
	PlanTypeStarter PlanType = "starter"
	PlanTypePro     PlanType = "pro"
)

func (p PlanType) String() string {
	return string(p)
}

func (p PlanType) IsValid() bool {
	switch p {
	case PlanTypeFree, PlanTypeStarter, PlanTypePro:
		return true
	}
	return false
}

// AccountStatus is the lifecycle state of an advertiser account. Accounts are
// never hard-deleted.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusCanceled  AccountStatus = "canceled"
)

func (s AccountStatus) String() string {
	return string(s)
}

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusSuspended, AccountStatusCanceled:
		return true
	}
	return false
}

// EntryKind classifies ledger journal entries.
type EntryKind string

const (
	// EntryKindPurchase credits bought through the payment webhook.
	EntryKindPurchase EntryKind = "purchase"
	// EntryKindDebit credits spent on a reservation date batch.
	EntryKindDebit EntryKind = "debit"
	// EntryKindRefund credits returned when a reservation is cancelled.
	EntryKindRefund EntryKind = "refund"
	// EntryKindAdjustment manual admin correction, positive or negative.
	EntryKindAdjustment EntryKind = "adjustment"
)

func (k EntryKind) String() string {
	return string(k)
}

func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindPurchase, EntryKindDebit, EntryKindRefund, EntryKindAdjustment:
		return true
	}
	return false
}
