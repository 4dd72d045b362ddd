// Package main implements a mock server catalog API for local development.
// It serves the catalog and price endpoints from a JSON fixture, lets prices
// be changed at runtime to drive alerts end to end, and can stand in for the
// Discord REST API so delivered notifications can be inspected.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

type fixture struct {
	Services []domain.Service          `json:"services"`
	Prices   map[string]decimal.Decimal `json:"prices"`
}

type sentMessage struct {
	ChannelID string    `json:"channel_id"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sent_at"`
}

type mockCatalog struct {
	logger   *slog.Logger
	services []domain.Service
	now      func() time.Time

	mu       sync.Mutex
	history  map[int][]domain.PriceSample // newest first
	messages []sentMessage
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-catalog/testdata/catalog.json", "path to catalog fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "services", len(fx.Services), "prices", len(fx.Prices))

	m, err := newMockCatalog(logger, fx, time.Now)
	if err != nil {
		logger.Error("invalid fixture", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock catalog server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, m.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func newMockCatalog(logger *slog.Logger, fx *fixture, now func() time.Time) (*mockCatalog, error) {
	m := &mockCatalog{
		logger:   logger,
		services: fx.Services,
		now:      now,
		history:  make(map[int][]domain.PriceSample, len(fx.Prices)),
	}
	for key, price := range fx.Prices {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("price key %q is not a service id", key)
		}
		m.history[id] = []domain.PriceSample{{Timestamp: now().UTC(), Price: price, HetznerID: id}}
	}
	return m, nil
}

func (m *mockCatalog) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/services", m.handleServices)
	mux.HandleFunc("POST /api/v1/prices/latest", m.handleLatest)
	mux.HandleFunc("POST /api/v1/prices/history", m.handleHistory)
	mux.HandleFunc("PUT /admin/prices/{id}", m.handleSetPrice)

	mux.HandleFunc("POST /discord/users/@me/channels", m.handleOpenDM)
	mux.HandleFunc("POST /discord/channels/{id}/messages", m.handlePostMessage)
	mux.HandleFunc("GET /admin/messages", m.handleListMessages)
	return mux
}

func (m *mockCatalog) handleServices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.ServicesResponse{Response: m.services})
}

func (m *mockCatalog) handleLatest(w http.ResponseWriter, r *http.Request) {
	var req catalog.PricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ServiceIDs) == 0 {
		writeError(w, http.StatusBadRequest, catalog.ErrNoServiceIDs.Error())
		return
	}

	writeJSON(w, http.StatusOK, catalog.PricesResponse{Response: m.latest(req.ServiceIDs)})
}

func (m *mockCatalog) handleHistory(w http.ResponseWriter, r *http.Request) {
	var req catalog.HistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.ServiceIDs) == 0 {
		writeError(w, http.StatusBadRequest, catalog.ErrNoServiceIDs.Error())
		return
	}

	cheapest := catalog.Cheapest(m.latest(req.ServiceIDs), catalog.ClampHistoryLimit(req.MaxServicesReturn))

	m.mu.Lock()
	result := make([]domain.PriceHistory, 0, len(cheapest))
	for _, p := range cheapest {
		result = append(result, domain.PriceHistory{
			ID:      p.ID,
			History: catalog.DedupeHistory(m.history[p.ID]),
		})
	}
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, catalog.HistoryResponse{Result: result})
}

func (m *mockCatalog) handleSetPrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid service id")
		return
	}

	var req struct {
		Price decimal.Decimal `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}

	sample := domain.PriceSample{Timestamp: m.now().UTC(), Price: req.Price, HetznerID: id}

	m.mu.Lock()
	m.history[id] = slices.Insert(m.history[id], 0, sample)
	m.mu.Unlock()

	m.logger.Info("price set", "service_id", id, "price", req.Price.String())
	writeJSON(w, http.StatusOK, domain.PricePoint{ID: id, LatestPrice: req.Price})
}

// latest returns the newest sample of each known id, in request order.
func (m *mockCatalog) latest(ids []int) []domain.PricePoint {
	m.mu.Lock()
	defer m.mu.Unlock()

	points := make([]domain.PricePoint, 0, len(ids))
	for _, id := range ids {
		if h := m.history[id]; len(h) > 0 {
			points = append(points, domain.PricePoint{ID: id, LatestPrice: h[0].Price})
		}
	}
	return points
}

func (*mockCatalog) handleOpenDM(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipientID string `json:"recipient_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RecipientID == "" {
		writeError(w, http.StatusBadRequest, "recipient_id is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": "dm-" + req.RecipientID})
}

func (m *mockCatalog) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid message")
		return
	}

	msg := sentMessage{ChannelID: r.PathValue("id"), Content: req.Content, SentAt: m.now().UTC()}

	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()

	m.logger.Info("message delivered", "channel_id", msg.ChannelID)
	writeJSON(w, http.StatusOK, map[string]string{"id": strconv.Itoa(len(m.messages))})
}

func (m *mockCatalog) handleListMessages(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	msgs := slices.Clone(m.messages)
	m.mu.Unlock()

	if msgs == nil {
		msgs = []sentMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
