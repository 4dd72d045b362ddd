package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/server-price-alerts/internal/engine"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// PriceChecker defines the interface for triggering a price check.
type PriceChecker interface {
	RunPriceCheck(ctx context.Context) (domain.CycleReport, error)
}

// DefaultPriceCheckTimeout bounds a manually triggered price check.
const DefaultPriceCheckTimeout = 5 * time.Minute

// PriceCheckHandler handles manual price check requests.
type PriceCheckHandler struct {
	checker PriceChecker
	timeout time.Duration
}

// PriceCheckOption configures a PriceCheckHandler.
type PriceCheckOption func(*PriceCheckHandler)

// WithPriceCheckTimeout overrides DefaultPriceCheckTimeout.
func WithPriceCheckTimeout(d time.Duration) PriceCheckOption {
	return func(h *PriceCheckHandler) {
		h.timeout = d
	}
}

// NewPriceCheckHandler creates a new PriceCheckHandler.
func NewPriceCheckHandler(c PriceChecker, opts ...PriceCheckOption) *PriceCheckHandler {
	h := &PriceCheckHandler{checker: c, timeout: DefaultPriceCheckTimeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PriceCheckOutput is the response body for the price check endpoint.
type PriceCheckOutput struct {
	Body struct {
		Status string             `json:"status" example:"price check completed" doc:"Price check status"`
		Report domain.CycleReport `json:"report" doc:"Cycle summary"`
	}
}

// Run triggers a full price check cycle. The cycle outlives a client
// disconnect and is bounded by the handler timeout instead.
func (h *PriceCheckHandler) Run(ctx context.Context, _ *struct{}) (*PriceCheckOutput, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
	defer cancel()

	report, err := h.checker.RunPriceCheck(ctx)
	switch {
	case errors.Is(err, engine.ErrPriceCheckRunning):
		return nil, huma.Error409Conflict(err.Error())
	case errors.Is(err, engine.ErrCatalogUnavailable):
		return nil, huma.Error502BadGateway("price check failed: " + err.Error())
	case err != nil:
		return nil, huma.Error500InternalServerError("price check failed: " + err.Error())
	}

	resp := &PriceCheckOutput{}
	resp.Body.Status = "price check completed"
	resp.Body.Report = report
	return resp, nil
}

// RegisterPriceCheckRoutes registers the manual trigger with the Huma API.
func RegisterPriceCheckRoutes(api huma.API, h *PriceCheckHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-price-check",
		Method:      http.MethodPost,
		Path:        "/api/v1/price-check",
		Summary:     "Trigger a price check",
		Description: "Fetches the latest prices of every monitored service, notifies " +
			"subscribers of tiers that were reached and re-arms recovered tiers.",
		Tags:   []string{"alerts"},
		Errors: []int{http.StatusConflict, http.StatusBadGateway, http.StatusInternalServerError},
	}, h.Run)
}
