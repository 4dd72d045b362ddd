package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	_, err := s.GetServiceAlert(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpsertAndGet(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.nowFunc = func() time.Time { return now }
	ctx := context.Background()

	a := domain.NewServiceAlert(42, 50, "111")
	require.NoError(t, s.UpsertServiceAlert(ctx, a))
	assert.Equal(t, now, a.UpdatedAt)

	got, err := s.GetServiceAlert(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	a := domain.NewServiceAlert(1, 10, "5")
	require.NoError(t, s.UpsertServiceAlert(ctx, a))

	// Mutating the caller's record after the write must not leak into the store.
	a.Tiers[0].Armed = true
	a.Tiers[0].Subscribers[0] = "6"

	got, err := s.GetServiceAlert(ctx, 1)
	require.NoError(t, err)
	assert.False(t, got.Tiers[0].Armed)
	assert.Equal(t, domain.UserID("5"), got.Tiers[0].Subscribers[0])

	// Nor may mutating a read result.
	got.Tiers[0].Price = 99
	again, err := s.GetServiceAlert(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Tiers[0].Price)
}

func TestMemoryStore_UpsertRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record *domain.ServiceAlert
		want   error
	}{
		{
			name:   "no tiers",
			record: &domain.ServiceAlert{ServiceID: 1},
			want:   domain.ErrEmptyServiceAlert,
		},
		{
			name: "empty tier",
			record: &domain.ServiceAlert{
				ServiceID: 1,
				Tiers:     []domain.AlertTier{{Price: 10}},
			},
			want: domain.ErrEmptyTier,
		},
		{
			name: "duplicate price",
			record: &domain.ServiceAlert{
				ServiceID: 1,
				Tiers: []domain.AlertTier{
					{Price: 10, Subscribers: []domain.UserID{"1"}},
					{Price: 10, Subscribers: []domain.UserID{"2"}},
				},
			},
			want: domain.ErrDuplicateTierPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewMemoryStore()
			err := s.UpsertServiceAlert(context.Background(), tt.record)
			require.ErrorIs(t, err, ErrInvalidRecord)
			require.ErrorIs(t, err, tt.want)

			_, err = s.GetServiceAlert(context.Background(), 1)
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertServiceAlert(ctx, domain.NewServiceAlert(3, 30, "1")))
	require.NoError(t, s.DeleteServiceAlert(ctx, 3))
	require.NoError(t, s.DeleteServiceAlert(ctx, 3))

	_, err := s.GetServiceAlert(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListServiceAlertsOrdered(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []int{9, 2, 5} {
		require.NoError(t, s.UpsertServiceAlert(ctx, domain.NewServiceAlert(id, 1, "1")))
	}

	alerts, err := s.ListServiceAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, []int{2, 5, 9}, []int{alerts[0].ServiceID, alerts[1].ServiceID, alerts[2].ServiceID})
}

func TestMemoryStore_ListUserSubscriptions(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.UpsertServiceAlert(ctx, &domain.ServiceAlert{
		ServiceID: 8,
		Tiers: []domain.AlertTier{
			{Price: 100, Subscribers: []domain.UserID{"1", "2"}},
			{Price: 50, Subscribers: []domain.UserID{"2"}},
		},
	}))
	require.NoError(t, s.UpsertServiceAlert(ctx, domain.NewServiceAlert(4, 70, "1")))

	subs, err := s.ListUserSubscriptions(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []domain.UserSubscription{
		{ServiceID: 4, Prices: []int{70}},
		{ServiceID: 8, Prices: []int{100}},
	}, subs)

	subs, err = s.ListUserSubscriptions(ctx, "3")
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = s.UpsertServiceAlert(ctx, domain.NewServiceAlert(id%5, id, "1"))
			_, _ = s.ListServiceAlerts(ctx)
			_, _ = s.GetServiceAlert(ctx, id%5)
		}(i)
	}
	wg.Wait()

	alerts, err := s.ListServiceAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 5)
}

func TestMemoryStore_MigrateAndPing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Ping(context.Background()))
}
