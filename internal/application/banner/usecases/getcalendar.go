package usecases

import (
	"context"
	"fmt"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/banner"
	"finderads/internal/shared/biztime"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type GetCalendarQuery struct {
	Position string
	From     string
	To       string
}

const maxCalendarRangeDays = 185

// GetCalendarUseCase derives the availability calendar for a position from
// the slot index. A date is free when no reservation holds it, regardless of
// the holder's active flag: inactive-but-approved reservations still block
// their slots.
type GetCalendarUseCase struct {
	reservationRepo banner.Repository
	logger          logger.Interface
}

func NewGetCalendarUseCase(reservationRepo banner.Repository, logger logger.Interface) *GetCalendarUseCase {
	return &GetCalendarUseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

func (uc *GetCalendarUseCase) Execute(ctx context.Context, query GetCalendarQuery) (*dto.CalendarDTO, error) {
	position, err := banner.ParsePosition(query.Position)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	from, err := banner.ParseDate(query.From)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	to, err := banner.ParseDate(query.To)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if to.Before(from) {
		return nil, apperrors.NewValidationError("calendar range end precedes start")
	}
	if banner.DaysBetween(from, to) > maxCalendarRangeDays {
		return nil, apperrors.NewValidationError("calendar range too large")
	}

	// Past dates are never bookable, so they are never free. A range that
	// starts in the past is clamped to the business today.
	today, err := banner.ParseDate(biztime.TodayString())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve business date: %w", err)
	}
	if from.Before(today) {
		from = today
	}

	days := banner.DaysBetween(from, to)
	booked, err := uc.reservationRepo.BookedDates(ctx, position, from, to)
	if err != nil {
		return nil, err
	}

	taken := make(map[banner.Date]struct{}, len(booked))
	for _, d := range booked {
		taken[d] = struct{}{}
	}

	free := make([]string, 0, days)
	for _, d := range banner.DateRange(from, to) {
		if _, ok := taken[d]; !ok {
			free = append(free, d.String())
		}
	}

	takenStrings := make([]string, 0, len(booked))
	for _, d := range booked {
		takenStrings = append(takenStrings, d.String())
	}

	return &dto.CalendarDTO{
		Position:   position.String(),
		From:       from.String(),
		To:         to.String(),
		CostPerDay: position.CostPerDay(),
		FreeDates:  free,
		TakenDates: takenStrings,
	}, nil
}
