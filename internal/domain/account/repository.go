package account

import "context"

// Repository is the persistence port for credit accounts.
type Repository interface {
	// Create inserts a new account.
	Create(ctx context.Context, a *ProAccount) error

	// Update persists aggregate changes (plan, status, Stripe linkage).
	// Balance changes go through DebitCredits/CreditCredits instead.
	Update(ctx context.Context, a *ProAccount) error

	// GetByID retrieves an account by numeric ID.
	GetByID(ctx context.Context, accountID uint) (*ProAccount, error)

	// GetBySID retrieves an account by its public short ID.
	GetBySID(ctx context.Context, sid string) (*ProAccount, error)

	// GetByEmail retrieves an account by owner email.
	GetByEmail(ctx context.Context, email string) (*ProAccount, error)

	// GetByStripeCustomerID retrieves the account linked to a Stripe customer.
	GetByStripeCustomerID(ctx context.Context, customerID string) (*ProAccount, error)

	// DebitCredits atomically decrements the balance with a conditional
	// update (credits = credits - amount WHERE credits >= amount). Returns
	// ErrInsufficientCredits when the condition fails, so two concurrent
	// bookings can never overdraw the account. Honors an open transaction
	// in ctx.
	DebitCredits(ctx context.Context, accountID uint, amount int) error

	// CreditCredits atomically increments the balance. Honors an open
	// transaction in ctx.
	CreditCredits(ctx context.Context, accountID uint, amount int) error

	// List returns accounts ordered by creation, newest first.
	List(ctx context.Context, offset, limit int) ([]*ProAccount, int64, error)
}

// LedgerRepository is the persistence port for the credit journal.
type LedgerRepository interface {
	// Append inserts a journal line. Returns ErrDuplicateReference when the
	// entry's external reference was already recorded. Honors an open
	// transaction in ctx.
	Append(ctx context.Context, e *LedgerEntry) error

	// SumByAccount returns the signed sum of all entries for an account.
	// Used by the conservation audit: the sum must equal the balance.
	SumByAccount(ctx context.Context, accountID uint) (int, error)

	// ListByAccount returns journal lines for an account, newest first.
	ListByAccount(ctx context.Context, accountID uint, offset, limit int) ([]*LedgerEntry, int64, error)

	// ExistsByReference reports whether an external reference was recorded.
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}
