package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"finderads/internal/domain/account"
	"finderads/internal/infrastructure/billing"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

// TransactionRunner wraps a function in a database transaction carried
// through the context.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// HandleWebhookUseCase applies a verified Stripe event to the credit ledger.
// The event id doubles as the journal reference, so redelivered events are
// absorbed by the reference's unique constraint instead of double-crediting.
type HandleWebhookUseCase struct {
	accountRepo account.Repository
	ledgerRepo  account.LedgerRepository
	tx          TransactionRunner
	logger      logger.Interface
}

func NewHandleWebhookUseCase(
	accountRepo account.Repository,
	ledgerRepo account.LedgerRepository,
	tx TransactionRunner,
	logger logger.Interface,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		tx:          tx,
		logger:      logger,
	}
}

// Execute processes one event. Unhandled event types are acknowledged and
// skipped so Stripe does not retry them forever.
func (uc *HandleWebhookUseCase) Execute(ctx context.Context, event *billing.Event) error {
	switch event.Type {
	case billing.EventCheckoutCompleted:
		return uc.handleCheckoutCompleted(ctx, event)
	case billing.EventInvoicePaid:
		return uc.handleInvoicePaid(ctx, event)
	case billing.EventSubscriptionUpdated:
		return uc.handleSubscriptionUpdated(ctx, event)
	case billing.EventSubscriptionDeleted:
		return uc.handleSubscriptionDeleted(ctx, event)
	default:
		uc.logger.Debugw("ignoring webhook event", "type", event.Type, "event_id", event.ID)
		return nil
	}
}

func (uc *HandleWebhookUseCase) handleCheckoutCompleted(ctx context.Context, event *billing.Event) error {
	session, err := billing.ParseCheckoutSession(event)
	if err != nil {
		return err
	}

	credits, err := strconv.Atoi(session.Metadata["credits"])
	if err != nil || credits <= 0 {
		return apperrors.NewValidationError("checkout session missing credits metadata")
	}

	processed, err := uc.ledgerRepo.ExistsByReference(ctx, event.ID)
	if err != nil {
		return err
	}
	if processed {
		uc.logger.Infow("webhook event already processed", "event_id", event.ID)
		return nil
	}

	acct, err := uc.resolveAccount(ctx, session.Customer, session.Metadata["account_email"])
	if err != nil {
		return err
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		entry, err := account.NewLedgerEntry(acct.ID(), account.EntryKindPurchase, credits)
		if err != nil {
			return err
		}
		entry = entry.WithReference(event.ID).
			WithDescription(fmt.Sprintf("credit purchase via checkout %s", session.ID))
		if err := uc.ledgerRepo.Append(txCtx, entry); err != nil {
			return err
		}
		return uc.accountRepo.CreditCredits(txCtx, acct.ID(), credits)
	})
	if errors.Is(err, account.ErrDuplicateReference) {
		uc.logger.Infow("webhook event already processed", "event_id", event.ID)
		return nil
	}
	if err != nil {
		return err
	}

	uc.logger.Infow("credits purchased",
		"account_sid", acct.SID(), "credits", credits, "event_id", event.ID)
	return nil
}

// handleInvoicePaid grants the recurring credits on subscription renewals.
// Invoices without credits metadata (one-off charges, prorations) are
// acknowledged without a grant.
func (uc *HandleWebhookUseCase) handleInvoicePaid(ctx context.Context, event *billing.Event) error {
	invoice, err := billing.ParseInvoice(event)
	if err != nil {
		return err
	}

	credits, err := strconv.Atoi(invoice.Metadata["credits"])
	if err != nil || credits <= 0 {
		uc.logger.Debugw("invoice without credits metadata, skipping grant",
			"event_id", event.ID, "invoice_id", invoice.ID)
		return nil
	}

	processed, err := uc.ledgerRepo.ExistsByReference(ctx, event.ID)
	if err != nil {
		return err
	}
	if processed {
		uc.logger.Infow("webhook event already processed", "event_id", event.ID)
		return nil
	}

	acct, err := uc.accountRepo.GetByStripeCustomerID(ctx, invoice.Customer)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			uc.logger.Warnw("invoice paid for unknown customer",
				"customer", invoice.Customer, "event_id", event.ID)
			return nil
		}
		return err
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		entry, err := account.NewLedgerEntry(acct.ID(), account.EntryKindPurchase, credits)
		if err != nil {
			return err
		}
		entry = entry.WithReference(event.ID).
			WithDescription(fmt.Sprintf("subscription renewal credits via invoice %s", invoice.ID))
		if err := uc.ledgerRepo.Append(txCtx, entry); err != nil {
			return err
		}
		return uc.accountRepo.CreditCredits(txCtx, acct.ID(), credits)
	})
	if errors.Is(err, account.ErrDuplicateReference) {
		uc.logger.Infow("webhook event already processed", "event_id", event.ID)
		return nil
	}
	if err != nil {
		return err
	}

	uc.logger.Infow("renewal credits granted",
		"account_sid", acct.SID(), "credits", credits, "event_id", event.ID)
	return nil
}

func (uc *HandleWebhookUseCase) handleSubscriptionUpdated(ctx context.Context, event *billing.Event) error {
	sub, err := billing.ParseSubscription(event)
	if err != nil {
		return err
	}

	acct, err := uc.accountRepo.GetByStripeCustomerID(ctx, sub.Customer)
	if err != nil {
		return err
	}

	plan := account.PlanType(sub.Metadata["plan"])
	if !plan.IsValid() {
		uc.logger.Warnw("subscription event without usable plan metadata",
			"event_id", event.ID, "customer", sub.Customer)
		return nil
	}

	if err := acct.ChangePlan(plan, sub.ID); err != nil {
		return err
	}
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return err
	}

	uc.logger.Infow("plan changed",
		"account_sid", acct.SID(), "plan", plan.String(), "event_id", event.ID)
	return nil
}

func (uc *HandleWebhookUseCase) handleSubscriptionDeleted(ctx context.Context, event *billing.Event) error {
	sub, err := billing.ParseSubscription(event)
	if err != nil {
		return err
	}

	acct, err := uc.accountRepo.GetByStripeCustomerID(ctx, sub.Customer)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			uc.logger.Warnw("subscription deleted for unknown customer",
				"customer", sub.Customer, "event_id", event.ID)
			return nil
		}
		return err
	}

	// Remaining credits survive the downgrade; only the plan is lost.
	acct.DowngradeToFree()
	if err := uc.accountRepo.Update(ctx, acct); err != nil {
		return err
	}

	uc.logger.Infow("account downgraded to free",
		"account_sid", acct.SID(), "event_id", event.ID)
	return nil
}

// resolveAccount finds the paying account by Stripe customer id, falling back
// to the email carried in metadata. First-time buyers get an account created
// on the spot and linked to the customer.
func (uc *HandleWebhookUseCase) resolveAccount(ctx context.Context, customerID, email string) (*account.ProAccount, error) {
	if customerID != "" {
		acct, err := uc.accountRepo.GetByStripeCustomerID(ctx, customerID)
		if err == nil {
			return acct, nil
		}
		if !errors.Is(err, account.ErrAccountNotFound) {
			return nil, err
		}
	}

	if email == "" {
		return nil, apperrors.NewValidationError("checkout session has no resolvable account")
	}

	acct, err := uc.accountRepo.GetByEmail(ctx, email)
	if errors.Is(err, account.ErrAccountNotFound) {
		acct, err = account.NewProAccount(email)
		if err != nil {
			return nil, err
		}
		if err := uc.accountRepo.Create(ctx, acct); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if customerID != "" && acct.StripeCustomerID() == nil {
		acct.AttachStripeCustomer(customerID)
		if err := uc.accountRepo.Update(ctx, acct); err != nil {
			return nil, err
		}
	}
	return acct, nil
}
