package engine

import (
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogMocks "github.com/donaldgifford/server-price-alerts/internal/catalog/mocks"
	"github.com/donaldgifford/server-price-alerts/internal/metrics"
	notifyMocks "github.com/donaldgifford/server-price-alerts/internal/notify/mocks"
	"github.com/donaldgifford/server-price-alerts/internal/store"
)

// newSchedulerTestEngine returns an engine whose store is empty, so a
// scheduled check never reaches the catalog.
func newSchedulerTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(
		store.NewMemoryStore(),
		catalogMocks.NewMockProvider(t),
		notifyMocks.NewMockTransport(t),
		WithLogger(quietLogger()),
	)
}

func TestNewScheduler_RegistersPriceCheck(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newSchedulerTestEngine(t), 10*time.Minute, quietLogger())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
	assert.NotZero(t, sched.priceCheckEntryID)
}

func TestNewScheduler_RejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	for _, d := range []time.Duration{0, -time.Minute} {
		_, err := NewScheduler(newSchedulerTestEngine(t), d, quietLogger())
		require.Error(t, err)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newSchedulerTestEngine(t), time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_SyncNextRunTimestamp(t *testing.T) {
	t.Parallel()

	sched, err := NewScheduler(newSchedulerTestEngine(t), 15*time.Minute, quietLogger())
	require.NoError(t, err)

	// Start so that cron populates Next times.
	sched.Start()
	defer sched.Stop()

	sched.SyncNextRunTimestamp()

	next := ptestutil.ToFloat64(metrics.SchedulerNextPriceCheckTimestamp)
	assert.Greater(t, next, float64(time.Now().Unix()), "next price check should be in the future")
}

func TestScheduler_RunPriceCheckSkipsWhenBusy(t *testing.T) {
	t.Parallel()

	eng := newSchedulerTestEngine(t)
	sched, err := NewScheduler(eng, time.Hour, quietLogger())
	require.NoError(t, err)

	eng.checkMu.Lock()
	defer eng.checkMu.Unlock()

	// Must return rather than block on the held lock.
	sched.runPriceCheck()
}

func TestScheduler_RunPriceCheck(t *testing.T) {
	t.Parallel()

	runsBefore := ptestutil.ToFloat64(metrics.PriceCheckRunsTotal)

	sched, err := NewScheduler(newSchedulerTestEngine(t), time.Hour, quietLogger())
	require.NoError(t, err)

	sched.runPriceCheck()
	assert.Greater(t, ptestutil.ToFloat64(metrics.PriceCheckRunsTotal), runsBefore)
}
