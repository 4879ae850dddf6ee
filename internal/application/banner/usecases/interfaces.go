package usecases

import (
	"context"

	"finderads/internal/domain/banner"
	"finderads/internal/infrastructure/cache"
)

// AdCache is the resolver-side view of the banner cache.
type AdCache interface {
	Get(ctx context.Context, position banner.Position, date banner.Date) (*cache.ResolvedBanner, error)
	Set(ctx context.Context, position banner.Position, date banner.Date, resolved *cache.ResolvedBanner) error
	SetNullMarker(ctx context.Context, position banner.Position, date banner.Date) error
	Invalidate(ctx context.Context, position banner.Position, dates []banner.Date) error
}

// ArticleRenderer renders a creative description to sanitized HTML for
// article-format positions.
type ArticleRenderer interface {
	Render(markdown string) (string, error)
}

// TransactionRunner wraps a function in a database transaction carried
// through the context.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
