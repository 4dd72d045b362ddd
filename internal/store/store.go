// Package store defines the datastore abstraction for server-price-alerts.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
//
// One ServiceAlert is persisted as a single row (Postgres) or document (Mongo),
// so a record write is all-or-nothing.
package store

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// ErrNotFound is returned when no alert record exists for a service.
var ErrNotFound = errors.New("service alert not found")

// ErrInvalidRecord is returned when a record violates its structural
// invariants and is refused before reaching storage.
var ErrInvalidRecord = errors.New("invalid service alert")

// Store defines all data access operations for server-price-alerts.
type Store interface {
	// Service alerts
	GetServiceAlert(ctx context.Context, serviceID int) (*domain.ServiceAlert, error)
	UpsertServiceAlert(ctx context.Context, a *domain.ServiceAlert) error
	DeleteServiceAlert(ctx context.Context, serviceID int) error
	ListServiceAlerts(ctx context.Context) ([]domain.ServiceAlert, error)
	ListUserSubscriptions(ctx context.Context, userID domain.UserID) ([]domain.UserSubscription, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}

func validateRecord(a *domain.ServiceAlert) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("%w: service %d: %w", ErrInvalidRecord, a.ServiceID, err)
	}
	return nil
}

// subscriptionsFrom collects the user's subscriptions from records ordered by
// service id.
func subscriptionsFrom(alerts []domain.ServiceAlert, userID domain.UserID) []domain.UserSubscription {
	subs := []domain.UserSubscription{}
	for i := range alerts {
		prices := alerts[i].PricesFor(userID)
		if len(prices) == 0 {
			continue
		}
		subs = append(subs, domain.UserSubscription{
			ServiceID: alerts[i].ServiceID,
			Prices:    prices,
		})
	}
	return subs
}
