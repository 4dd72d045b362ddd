package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/server-price-alerts/internal/api/web"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// AlertLister lists every stored service alert.
type AlertLister interface {
	ListServiceAlerts(ctx context.Context) ([]domain.ServiceAlert, error)
}

// StatusPageHandler serves the HTML overview of registered alerts.
type StatusPageHandler struct {
	alerts AlertLister
}

// NewStatusPageHandler creates a new StatusPageHandler.
func NewStatusPageHandler(l AlertLister) *StatusPageHandler {
	return &StatusPageHandler{alerts: l}
}

// AlertsPage renders every service alert and its tiers.
func (h *StatusPageHandler) AlertsPage(c echo.Context) error {
	ctx := c.Request().Context()

	alerts, err := h.alerts.ListServiceAlerts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "listing alerts: "+err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return web.AlertsPage(web.NewAlertsView(alerts)).Render(ctx, c.Response())
}

// RegisterStatusRoutes adds the status page to the Echo instance.
func RegisterStatusRoutes(e *echo.Echo, h *StatusPageHandler) {
	e.GET("/status", h.AlertsPage)
}
