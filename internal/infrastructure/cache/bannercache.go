package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"finderads/internal/domain/banner"
	"finderads/internal/shared/biztime"
	"finderads/internal/shared/logger"
)

// ResolvedBanner is the cached result of resolving a (position, date) slot on
// the public ad path. NotFound marks slots confirmed empty in the database so
// repeated lookups for unsold positions skip the DB entirely.
type ResolvedBanner struct {
	ReservationSID  string   `json:"reservation_sid"`
	Position        string   `json:"position"`
	Format          string   `json:"format"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"description_html,omitempty"`
	ImageURL        string   `json:"image_url"`
	TargetURL       string   `json:"target_url"`
	Badges          []string `json:"badges,omitempty"`
	NotFound        bool     `json:"not_found,omitempty"`
}

// BannerCache caches per-slot ad resolutions.
type BannerCache interface {
	Get(ctx context.Context, position banner.Position, date banner.Date) (*ResolvedBanner, error)
	Set(ctx context.Context, position banner.Position, date banner.Date, resolved *ResolvedBanner) error
	// SetNullMarker caches a short-lived empty-slot marker so unsold
	// positions do not hammer the database.
	SetNullMarker(ctx context.Context, position banner.Position, date banner.Date) error
	// Invalidate drops cached resolutions for the position on the given
	// dates. Called when a reservation is approved, toggled, or cancelled.
	Invalidate(ctx context.Context, position banner.Position, dates []banner.Date) error
}

const (
	bannerKeyPrefix = "ad:resolved:"
	bannerTTLJitter = 10 * time.Minute
	nullMarkerTTL   = 2 * time.Minute
)

// RedisBannerCache implements BannerCache on redis.
type RedisBannerCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisBannerCache(client *redis.Client, logger logger.Interface) *RedisBannerCache {
	return &RedisBannerCache{client: client, logger: logger}
}

func (c *RedisBannerCache) key(position banner.Position, date banner.Date) string {
	return fmt.Sprintf("%s%s:%s", bannerKeyPrefix, position.String(), date.String())
}

func (c *RedisBannerCache) Get(ctx context.Context, position banner.Position, date banner.Date) (*ResolvedBanner, error) {
	data, err := c.client.Get(ctx, c.key(position, date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get banner from cache: %w", err)
	}

	var resolved ResolvedBanner
	if err := json.Unmarshal(data, &resolved); err != nil {
		c.logger.Warnw("corrupt banner cache entry, dropping",
			"position", position.String(), "date", date.String(), "error", err)
		c.client.Del(ctx, c.key(position, date))
		return nil, nil
	}
	return &resolved, nil
}

// Set caches the resolution until the end of the business day plus jitter.
// The TTL past midnight absorbs clock skew between app servers; the jitter
// spreads expiry so a popular position does not stampede the DB at rollover.
func (c *RedisBannerCache) Set(ctx context.Context, position banner.Position, date banner.Date, resolved *ResolvedBanner) error {
	data, err := json.Marshal(resolved)
	if err != nil {
		return fmt.Errorf("failed to marshal banner for cache: %w", err)
	}

	ttl := time.Until(biztime.EndOfDayUTC(biztime.NowUTC())) + rand.N(bannerTTLJitter)
	if ttl <= 0 {
		ttl = time.Minute
	}

	if err := c.client.Set(ctx, c.key(position, date), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache banner: %w", err)
	}
	return nil
}

func (c *RedisBannerCache) SetNullMarker(ctx context.Context, position banner.Position, date banner.Date) error {
	data, err := json.Marshal(&ResolvedBanner{NotFound: true})
	if err != nil {
		return fmt.Errorf("failed to marshal null marker: %w", err)
	}

	if err := c.client.Set(ctx, c.key(position, date), data, nullMarkerTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache null marker: %w", err)
	}
	return nil
}

func (c *RedisBannerCache) Invalidate(ctx context.Context, position banner.Position, dates []banner.Date) error {
	if len(dates) == 0 {
		return nil
	}

	keys := make([]string, 0, len(dates))
	for _, date := range dates {
		keys = append(keys, c.key(position, date))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate banner cache: %w", err)
	}

	c.logger.Debugw("banner cache invalidated",
		"position", position.String(), "dates", len(dates))
	return nil
}
