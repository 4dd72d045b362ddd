package engine

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	catalogMocks "github.com/donaldgifford/server-price-alerts/internal/catalog/mocks"
	notifyMocks "github.com/donaldgifford/server-price-alerts/internal/notify/mocks"
	"github.com/donaldgifford/server-price-alerts/internal/store"
	storeMocks "github.com/donaldgifford/server-price-alerts/internal/store/mocks"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// catalogServices is the catalog snapshot used across engine tests.
var catalogServices = []domain.Service{
	{ServiceID: 42, CPU: "AMD Ryzen 5 3600", Region: "FSN", RAM: "64-DDR4"},
	{ServiceID: 7, CPU: "Intel Core i7-6700", Region: "HEL", RAM: "32-DDR4"},
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	eng := NewEngine(
		storeMocks.NewMockStore(t),
		catalogMocks.NewMockProvider(t),
		notifyMocks.NewMockTransport(t),
	)
	assert.True(t, eng.verifyServices)
	assert.Equal(t, defaultDeliveryConcurrency, eng.deliveryConcurrency)
	assert.Equal(t, defaultDeliveryTimeout, eng.deliveryTimeout)
	assert.NotNil(t, eng.log)
	assert.NotNil(t, eng.tracer)
	assert.NotNil(t, eng.validate)
}

func TestNewEngine_WithOptions(t *testing.T) {
	t.Parallel()

	l := quietLogger()
	tr := noop.NewTracerProvider().Tracer("test")
	eng := NewEngine(
		store.NewMemoryStore(),
		catalogMocks.NewMockProvider(t),
		notifyMocks.NewMockTransport(t),
		WithLogger(l),
		WithTracer(tr),
		WithServiceVerification(false),
		WithDeliveryConcurrency(3),
		WithDeliveryTimeout(2*time.Second),
	)
	assert.Same(t, l, eng.log)
	assert.Equal(t, tr, eng.tracer)
	assert.False(t, eng.verifyServices)
	assert.Equal(t, 3, eng.deliveryConcurrency)
	assert.Equal(t, 2*time.Second, eng.deliveryTimeout)
}

func TestNewEngine_IgnoresNonPositiveLimits(t *testing.T) {
	t.Parallel()

	eng := NewEngine(
		store.NewMemoryStore(),
		catalogMocks.NewMockProvider(t),
		notifyMocks.NewMockTransport(t),
		WithDeliveryConcurrency(0),
		WithDeliveryTimeout(-time.Second),
	)
	require.Equal(t, defaultDeliveryConcurrency, eng.deliveryConcurrency)
	require.Equal(t, defaultDeliveryTimeout, eng.deliveryTimeout)
}
