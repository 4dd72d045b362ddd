package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/server-price-alerts/internal/engine"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// AlertService is the subscription surface of the engine.
type AlertService interface {
	Subscribe(ctx context.Context, req engine.SubscriptionRequest) (engine.SubscribeOutcome, error)
	Unsubscribe(ctx context.Context, req engine.SubscriptionRequest) (engine.UnsubscribeOutcome, error)
	ListUserSubscriptions(ctx context.Context, userID string) ([]domain.UserSubscription, error)
}

// AlertHandler handles price alert subscriptions.
type AlertHandler struct {
	alerts AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(a AlertService) *AlertHandler {
	return &AlertHandler{alerts: a}
}

// SubscribeInput is the request body for creating a subscription.
type SubscribeInput struct {
	Body struct {
		UserID    string `json:"user_id" minLength:"1" doc:"Numeric chat user id" example:"175928847299117063"`
		ServiceID int    `json:"service_id" doc:"Catalog service id" example:"2307843"`
		Price     int    `json:"price" doc:"Alert threshold in whole euros" example:"40"`
	}
}

// UnsubscribeInput identifies the subscription to remove.
type UnsubscribeInput struct {
	UserID    string `path:"user_id" doc:"Numeric chat user id"`
	ServiceID int    `path:"service_id" doc:"Catalog service id"`
	Price     int    `path:"price" doc:"Alert threshold in whole euros"`
}

// SubscriptionOutput reports the outcome of a subscribe or unsubscribe call.
type SubscriptionOutput struct {
	Body struct {
		Result  string `json:"result" example:"created" doc:"Outcome code"`
		Message string `json:"message" example:"Alert created and user subscribed" doc:"User-facing message"`
	}
}

// ListUserAlertsInput selects the user whose subscriptions are listed.
type ListUserAlertsInput struct {
	UserID string `path:"user_id" doc:"Numeric chat user id"`
}

// ListUserAlertsOutput lists a user's subscriptions per service.
type ListUserAlertsOutput struct {
	Body struct {
		Alerts []domain.UserSubscription `json:"alerts" doc:"Subscribed prices per service"`
	}
}

// Subscribe adds the user to the price tier of a service.
func (h *AlertHandler) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscriptionOutput, error) {
	outcome, err := h.alerts.Subscribe(ctx, engine.SubscriptionRequest{
		UserID:    input.Body.UserID,
		ServiceID: input.Body.ServiceID,
		Price:     input.Body.Price,
	})
	if err != nil {
		return nil, alertError("subscribing", err)
	}

	resp := &SubscriptionOutput{}
	resp.Body.Result = string(outcome)
	resp.Body.Message = outcome.Message()
	return resp, nil
}

// Unsubscribe removes the user from the price tier of a service.
func (h *AlertHandler) Unsubscribe(ctx context.Context, input *UnsubscribeInput) (*SubscriptionOutput, error) {
	outcome, err := h.alerts.Unsubscribe(ctx, engine.SubscriptionRequest{
		UserID:    input.UserID,
		ServiceID: input.ServiceID,
		Price:     input.Price,
	})
	if err != nil {
		return nil, alertError("unsubscribing", err)
	}

	resp := &SubscriptionOutput{}
	resp.Body.Result = string(outcome)
	resp.Body.Message = outcome.Message()
	return resp, nil
}

// ListUserAlerts lists the services and prices a user is subscribed to.
func (h *AlertHandler) ListUserAlerts(ctx context.Context, input *ListUserAlertsInput) (*ListUserAlertsOutput, error) {
	subs, err := h.alerts.ListUserSubscriptions(ctx, input.UserID)
	if err != nil {
		return nil, alertError("listing alerts", err)
	}

	resp := &ListUserAlertsOutput{}
	resp.Body.Alerts = subs
	return resp, nil
}

// alertError maps engine errors to HTTP status codes.
func alertError(op string, err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidSubscription):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, engine.ErrNoAlert), errors.Is(err, engine.ErrUnknownService):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, engine.ErrCatalogUnavailable):
		return huma.Error503ServiceUnavailable(op + " failed: " + err.Error())
	default:
		return huma.Error500InternalServerError(op + " failed: " + err.Error())
	}
}

// RegisterAlertRoutes registers subscription endpoints with the Huma API.
func RegisterAlertRoutes(api huma.API, h *AlertHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "subscribe-alert",
		Method:      http.MethodPost,
		Path:        "/api/v1/alerts",
		Summary:     "Subscribe to a price alert",
		Description: "Subscribes the user to the price tier of a service, creating the " +
			"tier or service record when needed. Subscribing twice is a no-op.",
		Tags:   []string{"alerts"},
		Errors: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusServiceUnavailable, http.StatusInternalServerError},
	}, h.Subscribe)

	huma.Register(api, huma.Operation{
		OperationID: "unsubscribe-alert",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{user_id}/alerts/{service_id}/{price}",
		Summary:     "Unsubscribe from a price alert",
		Description: "Removes the user from the price tier. Empty tiers are dropped and a " +
			"service with no tiers left is no longer monitored.",
		Tags:   []string{"alerts"},
		Errors: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, h.Unsubscribe)

	huma.Register(api, huma.Operation{
		OperationID: "list-user-alerts",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{user_id}/alerts",
		Summary:     "List a user's alerts",
		Description: "Returns the services and prices the user is subscribed to.",
		Tags:        []string{"alerts"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.ListUserAlerts)
}
