package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T) *ProAccount {
	t.Helper()
	a, err := NewProAccount("advertiser@example.com")
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func TestNewProAccount_ValidInput(t *testing.T) {
	a, err := NewProAccount("Advertiser@Example.com")

	require.NoError(t, err)
	require.NotNil(t, a)
	assert.NotEmpty(t, a.SID())
	assert.True(t, len(a.SID()) > 5)
	assert.Equal(t, "advertiser@example.com", a.UserEmail())
	assert.Equal(t, 0, a.Credits())
	assert.Equal(t, PlanTypeFree, a.PlanType())
	assert.Equal(t, AccountStatusActive, a.Status())
	assert.Nil(t, a.StripeCustomerID())
	assert.Equal(t, 1, a.Version())
}

func TestNewProAccount_EmptyEmail(t *testing.T) {
	a, err := NewProAccount("   ")

	assert.ErrorIs(t, err, ErrEmailRequired)
	assert.Nil(t, a)
}

func TestProAccount_CreditAndDebit(t *testing.T) {
	a := newTestAccount(t)

	require.NoError(t, a.Credit(10))
	assert.Equal(t, 10, a.Credits())

	require.NoError(t, a.Debit(3))
	assert.Equal(t, 7, a.Credits())
}

func TestProAccount_Debit_Insufficient(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Credit(5))

	err := a.Debit(6)

	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, 5, a.Credits())
}

func TestProAccount_Debit_ExactBalance(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Credit(5))

	require.NoError(t, a.Debit(5))
	assert.Equal(t, 0, a.Credits())
}

func TestProAccount_Debit_InvalidAmounts(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Credit(5))

	assert.ErrorIs(t, a.Debit(0), ErrInvalidAmount)
	assert.ErrorIs(t, a.Debit(-2), ErrInvalidAmount)
	assert.ErrorIs(t, a.Credit(0), ErrInvalidAmount)
	assert.Equal(t, 5, a.Credits())
}

func TestProAccount_Debit_Suspended(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Credit(5))
	a.Suspend()

	err := a.Debit(1)

	assert.ErrorIs(t, err, ErrAccountSuspended)
	assert.Equal(t, 5, a.Credits())

	a.Reactivate()
	assert.NoError(t, a.Debit(1))
}

func TestProAccount_ChangePlan(t *testing.T) {
	a := newTestAccount(t)

	require.NoError(t, a.ChangePlan(PlanTypePro, "sub_123"))
	assert.Equal(t, PlanTypePro, a.PlanType())
	require.NotNil(t, a.StripeSubscriptionID())
	assert.Equal(t, "sub_123", *a.StripeSubscriptionID())

	err := a.ChangePlan(PlanType("enterprise"), "")
	assert.Error(t, err)
	assert.Equal(t, PlanTypePro, a.PlanType())
}

func TestProAccount_DowngradeToFree_KeepsCredits(t *testing.T) {
	a := newTestAccount(t)
	require.NoError(t, a.Credit(12))
	require.NoError(t, a.ChangePlan(PlanTypePro, "sub_123"))

	a.DowngradeToFree()

	assert.Equal(t, PlanTypeFree, a.PlanType())
	assert.Equal(t, AccountStatusCanceled, a.Status())
	assert.Nil(t, a.StripeSubscriptionID())
	assert.Equal(t, 12, a.Credits())
}

func TestLedgerEntry_Delta(t *testing.T) {
	tests := []struct {
		name  string
		kind  EntryKind
		delta int
	}{
		{"purchase is positive", EntryKindPurchase, 5},
		{"refund is positive", EntryKindRefund, 5},
		{"adjustment is positive", EntryKindAdjustment, 5},
		{"debit is negative", EntryKindDebit, -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewLedgerEntry(1, tc.kind, 5)
			require.NoError(t, err)
			assert.Equal(t, tc.delta, e.Delta())
		})
	}
}

func TestNewLedgerEntry_Invalid(t *testing.T) {
	_, err := NewLedgerEntry(0, EntryKindDebit, 5)
	assert.Error(t, err)

	_, err = NewLedgerEntry(1, EntryKind("bonus"), 5)
	assert.Error(t, err)

	_, err = NewLedgerEntry(1, EntryKindDebit, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestLedgerEntry_Builders(t *testing.T) {
	e, err := NewLedgerEntry(1, EntryKindPurchase, 50)
	require.NoError(t, err)

	e.WithReservation(7).WithReference("evt_abc").WithDescription("checkout")

	require.NotNil(t, e.ReservationID())
	assert.Equal(t, uint(7), *e.ReservationID())
	require.NotNil(t, e.Reference())
	assert.Equal(t, "evt_abc", *e.Reference())
	assert.Equal(t, "checkout", e.Description())
}
