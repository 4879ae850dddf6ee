package mappers

import (
	"fmt"

	"finderads/internal/domain/account"
	"finderads/internal/infrastructure/persistence/models"
)

func AccountToModel(a *account.ProAccount) *models.ProAccountModel {
	return &models.ProAccountModel{
		ID:                   a.ID(),
		SID:                  a.SID(),
		UserEmail:            a.UserEmail(),
		Credits:              a.Credits(),
		PlanType:             a.PlanType().String(),
		Status:               a.Status().String(),
		StripeCustomerID:     a.StripeCustomerID(),
		StripeSubscriptionID: a.StripeSubscriptionID(),
		APIKeyHash:           a.APIKeyHash(),
		Version:              a.Version(),
		CreatedAt:            a.CreatedAt(),
		UpdatedAt:            a.UpdatedAt(),
	}
}

func AccountToDomain(m *models.ProAccountModel) (*account.ProAccount, error) {
	planType := account.PlanType(m.PlanType)
	if !planType.IsValid() {
		return nil, fmt.Errorf("invalid plan type in storage: %s", m.PlanType)
	}
	status := account.AccountStatus(m.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid account status in storage: %s", m.Status)
	}

	return account.ReconstructProAccount(
		m.ID,
		m.SID,
		m.UserEmail,
		m.Credits,
		planType,
		status,
		m.StripeCustomerID,
		m.StripeSubscriptionID,
		m.APIKeyHash,
		m.CreatedAt,
		m.UpdatedAt,
		m.Version,
	), nil
}

func LedgerEntryToModel(e *account.LedgerEntry) *models.CreditEntryModel {
	return &models.CreditEntryModel{
		ID:            e.ID(),
		AccountID:     e.AccountID(),
		Kind:          e.Kind().String(),
		Amount:        e.Amount(),
		ReservationID: e.ReservationID(),
		Reference:     e.Reference(),
		Description:   e.Description(),
		CreatedAt:     e.CreatedAt(),
	}
}

func LedgerEntryToDomain(m *models.CreditEntryModel) (*account.LedgerEntry, error) {
	kind := account.EntryKind(m.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid ledger entry kind in storage: %s", m.Kind)
	}

	return account.ReconstructLedgerEntry(
		m.ID,
		m.AccountID,
		kind,
		m.Amount,
		m.ReservationID,
		m.Reference,
		m.Description,
		m.CreatedAt,
	), nil
}
