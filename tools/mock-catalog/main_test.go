package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCatalog(t *testing.T) *mockCatalog {
	t.Helper()
	fx, err := loadFixture(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	m, err := newMockCatalog(testLogger(), fx, func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return m
}

func serve(t *testing.T, m *mockCatalog, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	m.routes().ServeHTTP(w, req)
	return w
}

func TestLoadFixture(t *testing.T) {
	fx, err := loadFixture(filepath.Join("testdata", "catalog.json"))
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	if len(fx.Services) == 0 {
		t.Fatal("expected services in fixture")
	}
	if len(fx.Prices) != len(fx.Services) {
		t.Errorf("prices=%d, want one per service (%d)", len(fx.Prices), len(fx.Services))
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := loadFixture(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}

func TestNewMockCatalog_BadPriceKey(t *testing.T) {
	fx := &fixture{Prices: map[string]decimal.Decimal{"abc": decimal.NewFromInt(1)}}
	if _, err := newMockCatalog(testLogger(), fx, time.Now); err == nil {
		t.Fatal("expected error for non-numeric price key")
	}
}

func TestServices(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodGet, "/api/v1/services", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp catalog.ServicesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Response) != 3 {
		t.Fatalf("services=%d, want 3", len(resp.Response))
	}
	if resp.Response[0].Disks[0].Spec() != "2x-512GB-nvme" {
		t.Errorf("disk spec=%s, want 2x-512GB-nvme", resp.Response[0].Disks[0].Spec())
	}
}

func TestLatest(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodPost, "/api/v1/prices/latest", `{"service_ids":[2311502,999,2307843]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp catalog.PricesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Response) != 2 {
		t.Fatalf("prices=%d, want 2 (unknown id skipped)", len(resp.Response))
	}
	if resp.Response[0].ID != 2311502 || resp.Response[0].LatestPrice.String() != "28" {
		t.Errorf("first=%+v, want 2311502 at 28", resp.Response[0])
	}
}

func TestLatest_NoIDs(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodPost, "/api/v1/prices/latest", `{"service_ids":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSetPrice_UpdatesLatestAndHistory(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodPut, "/admin/prices/2307843", `{"price":"35.00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	// Same price again must collapse in history.
	serve(t, m, http.MethodPut, "/admin/prices/2307843", `{"price":"35"}`)

	w = serve(t, m, http.MethodPost, "/api/v1/prices/history", `{"service_ids":[2307843,2319277],"max_services_return":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp catalog.HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Result) != 1 {
		t.Fatalf("histories=%d, want 1", len(resp.Result))
	}
	h := resp.Result[0]
	if h.ID != 2307843 {
		t.Errorf("id=%d, want cheapest 2307843", h.ID)
	}
	if len(h.History) != 2 {
		t.Fatalf("samples=%d, want 2", len(h.History))
	}
	if h.History[0].Price.String() != "35" {
		t.Errorf("newest price=%s, want 35", h.History[0].Price)
	}
}

func TestSetPrice_BadID(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodPut, "/admin/prices/abc", `{"price":"1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestDiscordFlow(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodPost, "/discord/users/@me/channels", `{"recipient_id":"175928847299117063"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("open dm status=%d, want %d", w.Code, http.StatusOK)
	}
	var ch map[string]string
	if err := json.NewDecoder(w.Body).Decode(&ch); err != nil {
		t.Fatalf("decoding channel: %v", err)
	}
	if ch["id"] != "dm-175928847299117063" {
		t.Fatalf("channel id=%s", ch["id"])
	}

	w = serve(t, m, http.MethodPost, "/discord/channels/"+ch["id"]+"/messages", `{"content":"price dropped"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("post status=%d, want %d", w.Code, http.StatusOK)
	}

	w = serve(t, m, http.MethodGet, "/admin/messages", "")
	var msgs []sentMessage
	if err := json.NewDecoder(w.Body).Decode(&msgs); err != nil {
		t.Fatalf("decoding messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "price dropped" || msgs[0].ChannelID != ch["id"] {
		t.Errorf("messages=%+v", msgs)
	}
}

func TestOpenDM_MissingRecipient(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodPost, "/discord/users/@me/channels", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListMessages_Empty(t *testing.T) {
	m := newTestCatalog(t)

	w := serve(t, m, http.MethodGet, "/admin/messages", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body=%s, want []", w.Body.String())
	}
}
