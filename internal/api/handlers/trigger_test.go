package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/server-price-alerts/internal/engine"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// mockPriceChecker implements PriceChecker for testing.
type mockPriceChecker struct {
	report domain.CycleReport
	err    error
	called bool

	ctxErr      error
	deadline    time.Time
	hasDeadline bool
}

func (m *mockPriceChecker) RunPriceCheck(ctx context.Context) (domain.CycleReport, error) {
	m.called = true
	m.ctxErr = ctx.Err()
	m.deadline, m.hasDeadline = ctx.Deadline()
	return m.report, m.err
}

func TestPriceCheckHandler_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checker    *mockPriceChecker
		wantStatus int
		wantBody   string
	}{
		{
			name: "success returns report",
			checker: &mockPriceChecker{report: domain.CycleReport{
				ServicesMonitored: 3,
				TiersFired:        1,
			}},
			wantStatus: http.StatusOK,
			wantBody:   `"tiers_fired":1`,
		},
		{
			name:       "already running",
			checker:    &mockPriceChecker{err: engine.ErrPriceCheckRunning},
			wantStatus: http.StatusConflict,
			wantBody:   "price check already running",
		},
		{
			name: "catalog down",
			checker: &mockPriceChecker{
				err: fmt.Errorf("%w: connection refused", engine.ErrCatalogUnavailable),
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   "price check failed",
		},
		{
			name:       "store down",
			checker:    &mockPriceChecker{err: errors.New("db connection lost")},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "price check failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			RegisterPriceCheckRoutes(api, NewPriceCheckHandler(tt.checker))

			resp := api.Post("/api/v1/price-check")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
			assert.True(t, tt.checker.called)
		})
	}
}

func TestPriceCheckHandler_RunIgnoresClientDisconnect(t *testing.T) {
	t.Parallel()

	checker := &mockPriceChecker{}
	h := NewPriceCheckHandler(checker, WithPriceCheckTimeout(time.Minute))

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := h.Run(reqCtx, nil)
	require.NoError(t, err)

	require.True(t, checker.called)
	assert.NoError(t, checker.ctxErr, "cycle context must not inherit the request cancellation")
	require.True(t, checker.hasDeadline)
	assert.WithinDuration(t, start.Add(time.Minute), checker.deadline, 5*time.Second)
}
