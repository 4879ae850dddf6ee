package dto

import (
	"finderads/internal/domain/banner"
)

func ToReservationDTO(r *banner.Reservation) *ReservationDTO {
	if r == nil {
		return nil
	}

	creative := r.Creative()
	return &ReservationDTO{
		SID:         r.SID(),
		Position:    r.Position().String(),
		Title:       creative.Title(),
		Description: creative.Description(),
		ImageURL:    creative.ImageURL(),
		TargetURL:   creative.TargetURL(),
		Badges:      creative.Badges(),
		Dates:       r.Schedule().Strings(),
		CreditsUsed: r.CreditsUsed(),
		Status:      r.Status().String(),
		Active:      r.Active(),
		ValidatedAt: r.ValidatedAt(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func ToReservationDTOList(reservations []*banner.Reservation) []*ReservationDTO {
	dtos := make([]*ReservationDTO, 0, len(reservations))
	for _, r := range reservations {
		dtos = append(dtos, ToReservationDTO(r))
	}
	return dtos
}

func ToPositionDTO(p banner.Position) *PositionDTO {
	return &PositionDTO{
		Key:             p.String(),
		CostPerDay:      p.CostPerDay(),
		Format:          p.Format().String(),
		RecommendedSize: p.RecommendedSize(),
	}
}

func ToPositionDTOList(positions []banner.Position) []*PositionDTO {
	dtos := make([]*PositionDTO, 0, len(positions))
	for _, p := range positions {
		dtos = append(dtos, ToPositionDTO(p))
	}
	return dtos
}
