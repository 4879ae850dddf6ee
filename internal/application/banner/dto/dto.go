package dto

import "time"

type ReservationDTO struct {
	SID         string     `json:"sid"`
	AccountSID  string     `json:"account_sid,omitempty"`
	Position    string     `json:"position"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	TargetURL   string     `json:"target_url"`
	Badges      []string   `json:"badges"`
	Dates       []string   `json:"dates"`
	CreditsUsed int        `json:"credits_used"`
	Status      string     `json:"status"`
	Active      bool       `json:"active"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PositionDTO struct {
	Key             string `json:"key"`
	CostPerDay      int    `json:"cost_per_day"`
	Format          string `json:"format"`
	RecommendedSize string `json:"recommended_size"`
}

// CalendarDTO answers "which dates can I still buy" for one position.
type CalendarDTO struct {
	Position   string   `json:"position"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	CostPerDay int      `json:"cost_per_day"`
	FreeDates  []string `json:"free_dates"`
	TakenDates []string `json:"taken_dates"`
}

type BookDatesResultDTO struct {
	Reservation *ReservationDTO `json:"reservation"`
	Cost        int             `json:"cost"`
	Balance     int             `json:"balance"`
}

// ServedBannerDTO is the public ad payload. DescriptionHTML is only set for
// article-format positions.
type ServedBannerDTO struct {
	Position        string   `json:"position"`
	Format          string   `json:"format"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"description_html,omitempty"`
	ImageURL        string   `json:"image_url"`
	TargetURL       string   `json:"target_url"`
	Badges          []string `json:"badges,omitempty"`
}
