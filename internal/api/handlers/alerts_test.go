package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/server-price-alerts/internal/api/handlers"
	catalogMocks "github.com/donaldgifford/server-price-alerts/internal/catalog/mocks"
	"github.com/donaldgifford/server-price-alerts/internal/engine"
	notifyMocks "github.com/donaldgifford/server-price-alerts/internal/notify/mocks"
	"github.com/donaldgifford/server-price-alerts/internal/store"
	storeMocks "github.com/donaldgifford/server-price-alerts/internal/store/mocks"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

const testUser = "175928847299117063"

// newAlertAPI wires the alert routes to a real engine over a MemoryStore.
func newAlertAPI(t *testing.T) (humatest.TestAPI, *store.MemoryStore) {
	t.Helper()

	ms := store.NewMemoryStore()
	mc := catalogMocks.NewMockProvider(t)
	mc.EXPECT().ListServices(mock.Anything).
		Return([]domain.Service{{ServiceID: 42, CPU: "AMD Ryzen 5 3600"}}, nil).Maybe()

	eng := engine.NewEngine(ms, mc, notifyMocks.NewMockTransport(t), engine.WithLogger(quietLogger()))

	_, api := humatest.New(t)
	handlers.RegisterAlertRoutes(api, handlers.NewAlertHandler(eng))
	return api, ms
}

func TestAlertHandler_Subscribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "creates alert",
			body:       map[string]any{"user_id": testUser, "service_id": 42, "price": 50},
			wantStatus: http.StatusOK,
			wantBody:   "Alert created and user subscribed",
		},
		{
			name:       "non-numeric user",
			body:       map[string]any{"user_id": "bob", "service_id": 42, "price": 50},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid subscription request",
		},
		{
			name:       "negative price",
			body:       map[string]any{"user_id": testUser, "service_id": 42, "price": -1},
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid subscription request",
		},
		{
			name:       "unknown service",
			body:       map[string]any{"user_id": testUser, "service_id": 999, "price": 50},
			wantStatus: http.StatusNotFound,
			wantBody:   "service not found in catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api, _ := newAlertAPI(t)

			resp := api.Post("/api/v1/alerts", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestAlertHandler_SubscribeTwiceReportsUpdate(t *testing.T) {
	t.Parallel()

	api, ms := newAlertAPI(t)
	body := map[string]any{"user_id": testUser, "service_id": 42, "price": 50}

	resp := api.Post("/api/v1/alerts", body)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"result":"created"`)

	resp = api.Post("/api/v1/alerts", body)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"result":"updated"`)
	assert.Contains(t, resp.Body.String(), "Alert updated successfully")

	rec, err := ms.GetServiceAlert(t.Context(), 42)
	require.NoError(t, err)
	assert.Len(t, rec.Tiers[0].Subscribers, 1)
}

func TestAlertHandler_Unsubscribe(t *testing.T) {
	t.Parallel()

	api, ms := newAlertAPI(t)

	resp := api.Post("/api/v1/alerts", map[string]any{"user_id": testUser, "service_id": 42, "price": 50})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Delete("/api/v1/users/" + testUser + "/alerts/42/40")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "alert not found for this price")

	resp = api.Delete("/api/v1/users/275928847299117063/alerts/42/50")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "user not assigned to specified alert")

	resp = api.Delete("/api/v1/users/" + testUser + "/alerts/42/50")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"result":"record_deleted"`)
	assert.Contains(t, resp.Body.String(), "All alerts removed, service deleted")

	_, err := ms.GetServiceAlert(t.Context(), 42)
	require.ErrorIs(t, err, store.ErrNotFound)

	resp = api.Delete("/api/v1/users/" + testUser + "/alerts/42/50")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "service not found")
}

func TestAlertHandler_ListUserAlerts(t *testing.T) {
	t.Parallel()

	api, _ := newAlertAPI(t)

	resp := api.Get("/api/v1/users/" + testUser + "/alerts")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"alerts":[]}`, stripSchema(t, resp.Body.Bytes()))

	for _, price := range []int{50, 40} {
		resp = api.Post("/api/v1/alerts", map[string]any{"user_id": testUser, "service_id": 42, "price": price})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp = api.Get("/api/v1/users/" + testUser + "/alerts")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"alerts":[{"service_id":42,"prices":[50,40]}]}`, stripSchema(t, resp.Body.Bytes()))

	resp = api.Get("/api/v1/users/not-a-user/alerts")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAlertHandler_StoreFailure(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetServiceAlert(mock.Anything, 42).Return(nil, errors.New("db down")).Once()

	eng := engine.NewEngine(ms, catalogMocks.NewMockProvider(t), notifyMocks.NewMockTransport(t),
		engine.WithLogger(quietLogger()),
		engine.WithServiceVerification(false),
	)

	_, api := humatest.New(t)
	handlers.RegisterAlertRoutes(api, handlers.NewAlertHandler(eng))

	resp := api.Post("/api/v1/alerts", map[string]any{"user_id": testUser, "service_id": 42, "price": 50})
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "subscribing failed")
}

func TestAlertHandler_CatalogUnavailable(t *testing.T) {
	t.Parallel()

	mc := catalogMocks.NewMockProvider(t)
	mc.EXPECT().ListServices(mock.Anything).Return(nil, errors.New("timeout")).Once()

	eng := engine.NewEngine(store.NewMemoryStore(), mc, notifyMocks.NewMockTransport(t),
		engine.WithLogger(quietLogger()),
	)

	_, api := humatest.New(t)
	handlers.RegisterAlertRoutes(api, handlers.NewAlertHandler(eng))

	resp := api.Post("/api/v1/alerts", map[string]any{"user_id": testUser, "service_id": 42, "price": 50})
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
