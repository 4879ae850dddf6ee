package models

import "time"

// CreditEntryModel is one line of the append-only credit journal. Reference
// carries external event ids (Stripe); its unique index makes webhook
// processing idempotent under replays.
type CreditEntryModel struct {
	ID            uint    `gorm:"primaryKey"`
	AccountID     uint    `gorm:"index;not null"`
	Kind          string  `gorm:"size:20;not null"`
	Amount        int     `gorm:"not null"`
	ReservationID *uint   `gorm:"index"`
	Reference     *string `gorm:"uniqueIndex;size:128"`
	Description   string  `gorm:"size:255"`
	CreatedAt     time.Time
}

func (CreditEntryModel) TableName() string {
	return "credit_entries"
}
