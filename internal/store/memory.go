package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// MemoryStore implements Store in process memory. Records are deep-copied on
// every read and write so callers never share state with the store. It backs
// local development (database.driver "memory") and engine tests.
type MemoryStore struct {
	mu      sync.RWMutex
	alerts  map[int]*domain.ServiceAlert
	nowFunc func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		alerts:  make(map[int]*domain.ServiceAlert),
		nowFunc: time.Now,
	}
}

// GetServiceAlert returns a copy of the stored record or ErrNotFound.
func (m *MemoryStore) GetServiceAlert(_ context.Context, serviceID int) (*domain.ServiceAlert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.alerts[serviceID]
	if !ok {
		return nil, ErrNotFound
	}
	return a.Clone(), nil
}

// UpsertServiceAlert stores a copy of the record.
func (m *MemoryStore) UpsertServiceAlert(_ context.Context, a *domain.ServiceAlert) error {
	if err := validateRecord(a); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a.UpdatedAt = m.nowFunc()
	m.alerts[a.ServiceID] = a.Clone()
	return nil
}

// DeleteServiceAlert removes the record if present.
func (m *MemoryStore) DeleteServiceAlert(_ context.Context, serviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.alerts, serviceID)
	return nil
}

// ListServiceAlerts returns copies of all records ordered by service id.
func (m *MemoryStore) ListServiceAlerts(_ context.Context) ([]domain.ServiceAlert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshot(), nil
}

// ListUserSubscriptions returns the services and prices the user is
// subscribed to.
func (m *MemoryStore) ListUserSubscriptions(
	_ context.Context,
	userID domain.UserID,
) ([]domain.UserSubscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return subscriptionsFrom(m.snapshot(), userID), nil
}

// Migrate is a no-op.
func (*MemoryStore) Migrate(context.Context) error { return nil }

// Ping always succeeds.
func (*MemoryStore) Ping(context.Context) error { return nil }

// snapshot must be called with the lock held.
func (m *MemoryStore) snapshot() []domain.ServiceAlert {
	out := make([]domain.ServiceAlert, 0, len(m.alerts))
	for _, a := range m.alerts {
		out = append(out, *a.Clone())
	}
	slices.SortFunc(out, func(a, b domain.ServiceAlert) int {
		return cmp.Compare(a.ServiceID, b.ServiceID)
	})
	return out
}
