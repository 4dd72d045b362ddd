// Package catalog reads the dedicated-server offer catalog and its price
// history. Providers either query the scraper's Postgres tables directly or
// call a remote catalog API over HTTP; CachedProvider fronts either one with
// a TTL cache for the full service listing.
package catalog

import (
	"cmp"
	"context"
	"errors"
	"slices"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// History limits for PriceHistory.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// ErrNoServiceIDs is returned when a price query names no services.
var ErrNoServiceIDs = errors.New("at least one service id is required")

// Provider is the read interface to the catalog.
type Provider interface {
	// ListServices returns the full catalog snapshot.
	ListServices(ctx context.Context) ([]domain.Service, error)
	// LatestPrices returns the most recent price for each id. Ids with no
	// known price are omitted.
	LatestPrices(ctx context.Context, serviceIDs []int) ([]domain.PricePoint, error)
	// PriceHistory returns the history of the cheapest limit services among
	// serviceIDs, cheapest first.
	PriceHistory(ctx context.Context, serviceIDs []int, limit int) ([]domain.PriceHistory, error)
}

// ClampHistoryLimit bounds n to 1..MaxHistoryLimit. Zero selects the default.
func ClampHistoryLimit(n int) int {
	switch {
	case n == 0:
		return DefaultHistoryLimit
	case n < 1:
		return 1
	case n > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return n
	}
}

// Cheapest returns the limit lowest priced points. Equal prices keep the
// lower service id first.
func Cheapest(points []domain.PricePoint, limit int) []domain.PricePoint {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b domain.PricePoint) int {
		if c := a.LatestPrice.Cmp(b.LatestPrice); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// DedupeHistory keeps the first sample seen for each distinct price. Samples
// must be ordered newest first.
func DedupeHistory(samples []domain.PriceSample) []domain.PriceSample {
	out := make([]domain.PriceSample, 0, len(samples))
	for _, s := range samples {
		seen := slices.ContainsFunc(out, func(o domain.PriceSample) bool {
			return o.Price.Equal(s.Price)
		})
		if !seen {
			out = append(out, s)
		}
	}
	return out
}

// FindService returns the service with the given id.
func FindService(services []domain.Service, serviceID int) (domain.Service, bool) {
	i := slices.IndexFunc(services, func(s domain.Service) bool { return s.ServiceID == serviceID })
	if i < 0 {
		return domain.Service{}, false
	}
	return services[i], true
}
