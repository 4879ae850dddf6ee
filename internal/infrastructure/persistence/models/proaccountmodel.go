package models

import "time"

type ProAccountModel struct {
	ID                   uint    `gorm:"primaryKey"`
	SID                  string  `gorm:"column:sid;uniqueIndex;size:32;not null"`
	UserEmail            string  `gorm:"uniqueIndex;size:255;not null"`
	Credits              int     `gorm:"not null;default:0"`
	PlanType             string  `gorm:"size:20;not null;default:'free'"`
	Status               string  `gorm:"size:20;not null;index"`
	StripeCustomerID     *string `gorm:"size:64;index"`
	StripeSubscriptionID *string `gorm:"size:64"`
	APIKeyHash           string  `gorm:"size:128"`
	Version              int     `gorm:"default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (ProAccountModel) TableName() string {
	return "pro_accounts"
}
