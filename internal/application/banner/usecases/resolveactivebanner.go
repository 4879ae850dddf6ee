package usecases

import (
	"context"

	"finderads/internal/application/banner/dto"
	"finderads/internal/domain/banner"
	"finderads/internal/infrastructure/cache"
	"finderads/internal/shared/biztime"
	apperrors "finderads/internal/shared/errors"
	"finderads/internal/shared/logger"
)

type ResolveActiveBannerQuery struct {
	Position string
	// Date overrides the business "today" for preview requests. Empty means
	// today.
	Date string
}

// ResolveActiveBannerUseCase is the public ad server read path: given a
// position, return the creative to show right now, or nothing. Results are
// cached per (position, date); empty slots get a short-lived null marker so
// unsold positions do not turn into database traffic.
type ResolveActiveBannerUseCase struct {
	reservationRepo banner.Repository
	adCache         AdCache
	renderer        ArticleRenderer
	logger          logger.Interface
}

func NewResolveActiveBannerUseCase(
	reservationRepo banner.Repository,
	adCache AdCache,
	renderer ArticleRenderer,
	logger logger.Interface,
) *ResolveActiveBannerUseCase {
	return &ResolveActiveBannerUseCase{
		reservationRepo: reservationRepo,
		adCache:         adCache,
		renderer:        renderer,
		logger:          logger,
	}
}

// Execute returns nil with no error when the slot is empty.
func (uc *ResolveActiveBannerUseCase) Execute(ctx context.Context, query ResolveActiveBannerQuery) (*dto.ServedBannerDTO, error) {
	position, err := banner.ParsePosition(query.Position)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	raw := query.Date
	if raw == "" {
		raw = biztime.TodayString()
	}
	date, err := banner.ParseDate(raw)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if cached, err := uc.adCache.Get(ctx, position, date); err != nil {
		uc.logger.Warnw("ad cache read failed, falling through to db",
			"error", err, "position", position.String())
	} else if cached != nil {
		if cached.NotFound {
			return nil, nil
		}
		return cachedToDTO(cached), nil
	}

	resolved, err := uc.resolve(ctx, position, date)
	if err != nil {
		return nil, err
	}

	if resolved == nil {
		if err := uc.adCache.SetNullMarker(ctx, position, date); err != nil {
			uc.logger.Warnw("failed to cache null marker", "error", err, "position", position.String())
		}
		return nil, nil
	}

	if err := uc.adCache.Set(ctx, position, date, resolved); err != nil {
		uc.logger.Warnw("failed to cache resolved banner", "error", err, "position", position.String())
	}
	return cachedToDTO(resolved), nil
}

func (uc *ResolveActiveBannerUseCase) resolve(ctx context.Context, position banner.Position, date banner.Date) (*cache.ResolvedBanner, error) {
	holders, err := uc.reservationRepo.FindServable(ctx, position, date)
	if err != nil {
		return nil, err
	}

	// Slot uniqueness should leave at most one approved holder. More than
	// one means the slot index was bypassed; serve the most recently
	// validated and flag the rest.
	var winner *banner.Reservation
	active := 0
	for _, h := range holders {
		if !h.Active() {
			continue
		}
		active++
		if winner == nil {
			winner = h
		}
	}
	if active > 1 {
		uc.logger.Errorw("multiple active reservations hold one slot",
			"position", position.String(), "date", date.String(), "holders", active)
	}
	if winner == nil {
		return nil, nil
	}

	creative := winner.Creative()
	resolved := &cache.ResolvedBanner{
		ReservationSID: winner.SID(),
		Position:       position.String(),
		Format:         position.Format().String(),
		Title:          creative.Title(),
		Description:    creative.Description(),
		ImageURL:       creative.ImageURL(),
		TargetURL:      creative.TargetURL(),
		Badges:         creative.Badges(),
	}

	if position.Format() == banner.FormatArticle && creative.Description() != "" {
		html, err := uc.renderer.Render(creative.Description())
		if err != nil {
			uc.logger.Warnw("article rendering failed, serving plain description",
				"error", err, "reservation_sid", winner.SID())
		} else {
			resolved.DescriptionHTML = html
		}
	}
	return resolved, nil
}

func cachedToDTO(resolved *cache.ResolvedBanner) *dto.ServedBannerDTO {
	return &dto.ServedBannerDTO{
		Position:        resolved.Position,
		Format:          resolved.Format,
		Title:           resolved.Title,
		Description:     resolved.Description,
		DescriptionHTML: resolved.DescriptionHTML,
		ImageURL:        resolved.ImageURL,
		TargetURL:       resolved.TargetURL,
		Badges:          resolved.Badges,
	}
}
