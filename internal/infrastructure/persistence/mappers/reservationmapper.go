package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"finderads/internal/domain/banner"
	"finderads/internal/infrastructure/persistence/models"
)

func ReservationToModel(r *banner.Reservation) *models.BannerReservationModel {
	creative := r.Creative()
	return &models.BannerReservationModel{
		ID:            r.ID(),
		SID:           r.SID(),
		AccountID:     r.AccountID(),
		Position:      r.Position().String(),
		Title:         creative.Title(),
		Description:   creative.Description(),
		ImageURL:      creative.ImageURL(),
		TargetURL:     creative.TargetURL(),
		Badges:        datatypes.NewJSONSlice(creative.Badges()),
		ReservedDates: datatypes.NewJSONSlice(r.Schedule().Strings()),
		CreditsUsed:   r.CreditsUsed(),
		Status:        r.Status().String(),
		Active:        r.Active(),
		ValidatedAt:   r.ValidatedAt(),
		Version:       r.Version(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
}

func ReservationToDomain(m *models.BannerReservationModel) (*banner.Reservation, error) {
	position, err := banner.ParsePosition(m.Position)
	if err != nil {
		return nil, fmt.Errorf("invalid position in storage: %w", err)
	}

	status := banner.ReservationStatus(m.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid reservation status in storage: %s", m.Status)
	}

	schedule, err := banner.ScheduleFromStrings([]string(m.ReservedDates))
	if err != nil {
		return nil, fmt.Errorf("invalid reserved dates in storage: %w", err)
	}

	creative := banner.ReconstructCreative(m.Title, m.Description, m.ImageURL, m.TargetURL, []string(m.Badges))

	return banner.ReconstructReservation(
		m.ID,
		m.SID,
		m.AccountID,
		position,
		creative,
		schedule,
		m.CreditsUsed,
		status,
		m.Active,
		m.ValidatedAt,
		m.CreatedAt,
		m.UpdatedAt,
		m.Version,
	), nil
}
