package dto

import (
	"time"

	"finderads/internal/domain/account"
)

type AccountDTO struct {
	SID       string    `json:"sid"`
	UserEmail string    `json:"user_email"`
	Credits   int       `json:"credits"`
	PlanType  string    `json:"plan_type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LedgerEntryDTO struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Amount      int       `json:"amount"`
	Delta       int       `json:"delta"`
	Reference   *string   `json:"reference,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LedgerAuditDTO reports the conservation check: the journal folded into a
// signed sum against the live balance.
type LedgerAuditDTO struct {
	AccountSID string `json:"account_sid"`
	Balance    int    `json:"balance"`
	JournalSum int    `json:"journal_sum"`
	Consistent bool   `json:"consistent"`
}

func ToAccountDTO(a *account.ProAccount) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		SID:       a.SID(),
		UserEmail: a.UserEmail(),
		Credits:   a.Credits(),
		PlanType:  a.PlanType().String(),
		Status:    a.Status().String(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}

func ToLedgerEntryDTO(e *account.LedgerEntry) *LedgerEntryDTO {
	return &LedgerEntryDTO{
		ID:          e.ID(),
		Kind:        e.Kind().String(),
		Amount:      e.Amount(),
		Delta:       e.Delta(),
		Reference:   e.Reference(),
		Description: e.Description(),
		CreatedAt:   e.CreatedAt(),
	}
}

func ToLedgerEntryDTOList(entries []*account.LedgerEntry) []*LedgerEntryDTO {
	dtos := make([]*LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, ToLedgerEntryDTO(e))
	}
	return dtos
}
