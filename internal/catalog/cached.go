package catalog

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/donaldgifford/server-price-alerts/internal/metrics"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

const servicesKey = "services"

// CachedProvider serves ListServices from a TTL cache and passes price
// queries straight through, so the price check always sees fresh prices.
type CachedProvider struct {
	next     Provider
	services *Cache[[]domain.Service]
	log      *slog.Logger
}

// CachedOption configures a CachedProvider.
type CachedOption func(*cachedConfig)

type cachedConfig struct {
	log     *slog.Logger
	nowFunc func() time.Time
}

// WithCacheLogger sets the logger.
func WithCacheLogger(l *slog.Logger) CachedOption {
	return func(c *cachedConfig) {
		c.log = l
	}
}

// WithCacheClock overrides the clock used for expiry.
func WithCacheClock(now func() time.Time) CachedOption {
	return func(c *cachedConfig) {
		c.nowFunc = now
	}
}

// NewCachedProvider wraps next with a service listing cache. A non-positive
// ttl selects DefaultCacheTTL.
func NewCachedProvider(next Provider, ttl time.Duration, opts ...CachedOption) *CachedProvider {
	cfg := cachedConfig{log: slog.Default(), nowFunc: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		next:     next,
		services: NewCache[[]domain.Service](ttl, cfg.nowFunc),
		log:      cfg.log,
	}
}

// ListServices returns the cached catalog, refreshing it once expired.
func (p *CachedProvider) ListServices(ctx context.Context) ([]domain.Service, error) {
	services, hit, err := p.services.GetOrLoad(ctx, servicesKey, p.next.ListServices)
	if err != nil {
		metrics.CatalogFetchFailuresTotal.WithLabelValues("list_services").Inc()
		p.log.Error("catalog fetch failed", "operation", "list_services", "error", err)
		return nil, err
	}
	if hit {
		metrics.CatalogCacheHitsTotal.Inc()
	} else {
		metrics.CatalogCacheMissesTotal.Inc()
		p.log.Debug("catalog refreshed", "services", len(services))
	}
	return slices.Clone(services), nil
}

// LatestPrices is not cached.
func (p *CachedProvider) LatestPrices(ctx context.Context, serviceIDs []int) ([]domain.PricePoint, error) {
	points, err := p.next.LatestPrices(ctx, serviceIDs)
	if err != nil {
		metrics.CatalogFetchFailuresTotal.WithLabelValues("latest_prices").Inc()
		return nil, err
	}
	return points, nil
}

// PriceHistory is not cached.
func (p *CachedProvider) PriceHistory(
	ctx context.Context,
	serviceIDs []int,
	limit int,
) ([]domain.PriceHistory, error) {
	histories, err := p.next.PriceHistory(ctx, serviceIDs, limit)
	if err != nil {
		metrics.CatalogFetchFailuresTotal.WithLabelValues("price_history").Inc()
		return nil, err
	}
	return histories, nil
}

// Invalidate forces the next ListServices call to refetch.
func (p *CachedProvider) Invalidate() {
	p.services.Invalidate(servicesKey)
}
