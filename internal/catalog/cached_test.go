package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/server-price-alerts/internal/catalog/mocks"
	"github.com/donaldgifford/server-price-alerts/internal/metrics"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedProvider_ListServicesCachesUntilTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	mp := mocks.NewMockProvider(t)
	mp.EXPECT().ListServices(mock.Anything).
		Return([]domain.Service{{ServiceID: 1}}, nil).Twice()

	p := NewCachedProvider(mp, time.Minute,
		WithCacheLogger(quietLogger()),
		WithCacheClock(clock.Now),
	)
	ctx := context.Background()

	for range 3 {
		got, err := p.ListServices(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}

	clock.Advance(time.Minute)
	_, err := p.ListServices(ctx)
	require.NoError(t, err)
}

func TestCachedProvider_ListServicesReturnsCopy(t *testing.T) {
	t.Parallel()

	mp := mocks.NewMockProvider(t)
	mp.EXPECT().ListServices(mock.Anything).
		Return([]domain.Service{{ServiceID: 1}, {ServiceID: 2}}, nil).Once()

	p := NewCachedProvider(mp, time.Minute, WithCacheLogger(quietLogger()))
	ctx := context.Background()

	first, err := p.ListServices(ctx)
	require.NoError(t, err)
	first[0].ServiceID = 99

	second, err := p.ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second[0].ServiceID)
}

func TestCachedProvider_Invalidate(t *testing.T) {
	t.Parallel()

	mp := mocks.NewMockProvider(t)
	mp.EXPECT().ListServices(mock.Anything).Return([]domain.Service{}, nil).Twice()

	p := NewCachedProvider(mp, time.Hour, WithCacheLogger(quietLogger()))
	ctx := context.Background()

	_, err := p.ListServices(ctx)
	require.NoError(t, err)
	p.Invalidate()
	_, err = p.ListServices(ctx)
	require.NoError(t, err)
}

func TestCachedProvider_ListServicesError(t *testing.T) {
	t.Parallel()

	mp := mocks.NewMockProvider(t)
	mp.EXPECT().ListServices(mock.Anything).Return(nil, errors.New("db down")).Once()
	mp.EXPECT().ListServices(mock.Anything).Return([]domain.Service{{ServiceID: 5}}, nil).Once()

	p := NewCachedProvider(mp, time.Hour, WithCacheLogger(quietLogger()))
	ctx := context.Background()

	before := ptestutil.ToFloat64(metrics.CatalogFetchFailuresTotal.WithLabelValues("list_services"))
	_, err := p.ListServices(ctx)
	require.Error(t, err)
	after := ptestutil.ToFloat64(metrics.CatalogFetchFailuresTotal.WithLabelValues("list_services"))
	assert.GreaterOrEqual(t, after-before, 1.0)

	got, err := p.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCachedProvider_PricesPassThrough(t *testing.T) {
	t.Parallel()

	mp := mocks.NewMockProvider(t)
	points := []domain.PricePoint{{ID: 1, LatestPrice: decimal.NewFromInt(40)}}
	mp.EXPECT().LatestPrices(mock.Anything, []int{1}).Return(points, nil).Twice()
	mp.EXPECT().PriceHistory(mock.Anything, []int{1}, 5).
		Return([]domain.PriceHistory{{ID: 1}}, nil).Once()

	p := NewCachedProvider(mp, time.Hour, WithCacheLogger(quietLogger()))
	ctx := context.Background()

	for range 2 {
		got, err := p.LatestPrices(ctx, []int{1})
		require.NoError(t, err)
		assert.Equal(t, points, got)
	}

	h, err := p.PriceHistory(ctx, []int{1}, 5)
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

func TestCachedProvider_LatestPricesError(t *testing.T) {
	t.Parallel()

	mp := mocks.NewMockProvider(t)
	mp.EXPECT().LatestPrices(mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

	p := NewCachedProvider(mp, time.Hour, WithCacheLogger(quietLogger()))
	_, err := p.LatestPrices(context.Background(), []int{1})
	require.Error(t, err)
}
