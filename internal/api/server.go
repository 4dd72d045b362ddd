// Package api assembles the HTTP server: Echo with middleware, the Huma
// operations and the operational endpoints.
package api

import (
	"context"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/server-price-alerts/api/openapi"
	"github.com/donaldgifford/server-price-alerts/internal/api/handlers"
	mw "github.com/donaldgifford/server-price-alerts/internal/api/middleware"
	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// Title names the API in the OpenAPI document and Swagger UI.
const Title = "Server Price Alerts API"

// AlertStore is the slice of the alert store the server reads directly.
type AlertStore interface {
	Ping(ctx context.Context) error
	ListServiceAlerts(ctx context.Context) ([]domain.ServiceAlert, error)
}

// Deps are the collaborators behind the routes.
type Deps struct {
	Store      AlertStore
	Alerts     handlers.AlertService
	Catalog    catalog.Provider
	PriceCheck handlers.PriceChecker
}

// Option configures the server.
type Option func(*options)

type options struct {
	log    *slog.Logger
	tracer trace.Tracer
}

// WithLogger sets the request and panic logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// NewServer builds the Echo instance with every route registered and returns
// the Huma API alongside it for spec generation.
func NewServer(deps Deps, version string, opts ...Option) (*echo.Echo, huma.API) {
	o := &options{
		log:    slog.Default(),
		tracer: otel.Tracer("github.com/donaldgifford/server-price-alerts/internal/api"),
	}
	for _, opt := range opts {
		opt(o)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.RequestLog(o.log), mw.Recovery(o.log), mw.Tracing(o.tracer), mw.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(deps.Store))
	handlers.RegisterStatusRoutes(e, handlers.NewStatusPageHandler(deps.Store))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e, Title)

	api := humaecho.New(e, huma.DefaultConfig(Title, version))
	handlers.RegisterAlertRoutes(api, handlers.NewAlertHandler(deps.Alerts))
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(deps.Catalog))
	handlers.RegisterPriceCheckRoutes(api, handlers.NewPriceCheckHandler(deps.PriceCheck))

	return e, api
}
