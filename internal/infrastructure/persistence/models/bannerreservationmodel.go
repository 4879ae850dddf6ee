package models

import (
	"time"

	"gorm.io/datatypes"
)

type BannerReservationModel struct {
	ID            uint                        `gorm:"primaryKey"`
	SID           string                      `gorm:"column:sid;uniqueIndex;size:32;not null"`
	AccountID     uint                        `gorm:"index;not null"`
	Position      string                      `gorm:"size:40;not null;index"`
	Title         string                      `gorm:"size:255;not null"`
	Description   string                      `gorm:"type:text"`
	ImageURL      string                      `gorm:"size:1024;not null"`
	TargetURL     string                      `gorm:"size:1024;not null"`
	Badges        datatypes.JSONSlice[string] `gorm:"type:json"`
	ReservedDates datatypes.JSONSlice[string] `gorm:"type:json"`
	CreditsUsed   int                         `gorm:"not null;default:0"`
	Status        string                      `gorm:"size:20;not null;index"`
	Active        bool                        `gorm:"not null;default:false"`
	ValidatedAt   *time.Time
	Version       int `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BannerReservationModel) TableName() string {
	return "banner_reservations"
}

// ReservationDateModel is the slot index: one row per claimed (position, date)
// pair. The composite unique index is what rejects double-booking at commit
// time.
type ReservationDateModel struct {
	ID            uint   `gorm:"primaryKey"`
	Position      string `gorm:"size:40;not null;uniqueIndex:idx_position_date"`
	Date          string `gorm:"size:10;not null;uniqueIndex:idx_position_date"`
	ReservationID uint   `gorm:"index;not null"`
	CreatedAt     time.Time
}

func (ReservationDateModel) TableName() string {
	return "reservation_dates"
}
