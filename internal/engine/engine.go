// Package engine implements the alert subscription rules and the price check
// cycle that matches fresh catalog prices against alert tiers.
package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	"github.com/donaldgifford/server-price-alerts/internal/notify"
	"github.com/donaldgifford/server-price-alerts/internal/store"
)

const (
	defaultDeliveryConcurrency = 8
	defaultDeliveryTimeout     = 10 * time.Second

	tracerName = "github.com/donaldgifford/server-price-alerts/internal/engine"
)

// Errors returned by engine operations. Callers map them to user-facing
// outcomes with errors.Is.
var (
	// ErrInvalidSubscription rejects malformed input before any store access.
	ErrInvalidSubscription = errors.New("invalid subscription request")
	// ErrUnknownService rejects subscriptions to services absent from the catalog.
	ErrUnknownService = errors.New("service not found in catalog")
	// ErrCatalogUnavailable reports a failed catalog call.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrPersistence reports an alert store failure.
	ErrPersistence = errors.New("alert store failure")
	// ErrPriceCheckRunning is returned when a price check is already in progress.
	ErrPriceCheckRunning = errors.New("price check already running")
)

// Engine owns the subscription rules and the price check cycle.
type Engine struct {
	store     store.Store
	catalog   catalog.Provider
	transport notify.Transport
	log       *slog.Logger
	tracer    trace.Tracer
	validate  *validator.Validate

	verifyServices      bool
	deliveryConcurrency int
	deliveryTimeout     time.Duration

	// checkMu keeps scheduled and manually triggered price checks from
	// overlapping.
	checkMu sync.Mutex
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	c catalog.Provider,
	t notify.Transport,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:               s,
		catalog:             c,
		transport:           t,
		log:                 slog.Default(),
		tracer:              otel.Tracer(tracerName),
		validate:            validator.New(validator.WithRequiredStructEnabled()),
		verifyServices:      true,
		deliveryConcurrency: defaultDeliveryConcurrency,
		deliveryTimeout:     defaultDeliveryTimeout,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTracer sets the tracer used for price check and subscription spans.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithServiceVerification controls whether Subscribe checks that the service
// exists in the catalog.
func WithServiceVerification(enabled bool) EngineOption {
	return func(e *Engine) {
		e.verifyServices = enabled
	}
}

// WithDeliveryConcurrency bounds concurrent notification deliveries.
func WithDeliveryConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.deliveryConcurrency = n
		}
	}
}

// WithDeliveryTimeout bounds each individual delivery attempt.
func WithDeliveryTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.deliveryTimeout = d
		}
	}
}
