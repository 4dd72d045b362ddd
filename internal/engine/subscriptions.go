package engine

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	"github.com/donaldgifford/server-price-alerts/internal/metrics"
	"github.com/donaldgifford/server-price-alerts/internal/store"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// ErrNoAlert is the common cause of every "nothing to remove" outcome.
var ErrNoAlert = errors.New("no_alert")

// Unsubscribe outcomes that leave the store untouched.
var (
	ErrServiceNotMonitored = fmt.Errorf("%w: service not found", ErrNoAlert)
	ErrPriceTierNotFound   = fmt.Errorf("%w: alert not found for this price", ErrNoAlert)
	ErrNotSubscribed       = fmt.Errorf("%w: user not assigned to specified alert", ErrNoAlert)
)

// SubscriptionRequest identifies one (user, service, price) subscription.
type SubscriptionRequest struct {
	UserID    string `json:"user_id"    validate:"required,number"`
	ServiceID int    `json:"service_id" validate:"gte=0"`
	Price     int    `json:"price"      validate:"gte=0"`
}

// SubscribeOutcome distinguishes a new record from a change to an existing one.
type SubscribeOutcome string

// Subscribe outcomes.
const (
	SubscriptionCreated SubscribeOutcome = "created"
	SubscriptionUpdated SubscribeOutcome = "updated"
)

// Message returns the user-facing confirmation.
func (o SubscribeOutcome) Message() string {
	if o == SubscriptionCreated {
		return "Alert created and user subscribed"
	}
	return "Alert updated successfully"
}

// UnsubscribeOutcome reports whether the service record survived.
type UnsubscribeOutcome string

// Unsubscribe outcomes.
const (
	Unsubscribed       UnsubscribeOutcome = "removed"
	AlertRecordDeleted UnsubscribeOutcome = "record_deleted"
)

// Message returns the user-facing confirmation.
func (o UnsubscribeOutcome) Message() string {
	if o == AlertRecordDeleted {
		return "All alerts removed, service deleted"
	}
	return "Unsubscribed user successfully"
}

// Subscribe adds the user to the tier at req.Price on req.ServiceID, creating
// the record or tier if needed. Subscribing twice is a no-op success.
func (e *Engine) Subscribe(ctx context.Context, req SubscriptionRequest) (SubscribeOutcome, error) {
	ctx, span := e.tracer.Start(ctx, "engine.Subscribe", trace.WithAttributes(
		attribute.Int("service_id", req.ServiceID),
		attribute.Int("price", req.Price),
	))
	defer span.End()

	userID, err := e.parseRequest(req)
	if err != nil {
		return "", err
	}

	if err := e.verifyService(ctx, req.ServiceID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	rec, err := e.store.GetServiceAlert(ctx, req.ServiceID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		rec = domain.NewServiceAlert(req.ServiceID, req.Price, userID)
		if err := e.store.UpsertServiceAlert(ctx, rec); err != nil {
			return "", e.persistenceError(ctx, span, "creating service alert", err)
		}
		e.subscribed(ctx, req, userID, SubscriptionCreated)
		return SubscriptionCreated, nil
	case err != nil:
		return "", e.persistenceError(ctx, span, "loading service alert", err)
	}

	changed := true
	if tier := rec.Tier(req.Price); tier == nil {
		rec.Tiers = append(rec.Tiers, domain.AlertTier{
			Price:       req.Price,
			Subscribers: []domain.UserID{userID},
		})
	} else {
		changed = tier.AddSubscriber(userID)
	}

	if !changed {
		e.log.DebugContext(ctx, "user already subscribed",
			"user_id", userID,
			"service_id", req.ServiceID,
			"price", req.Price,
		)
		return SubscriptionUpdated, nil
	}
	if err := e.store.UpsertServiceAlert(ctx, rec); err != nil {
		return "", e.persistenceError(ctx, span, "updating service alert", err)
	}
	e.subscribed(ctx, req, userID, SubscriptionUpdated)
	return SubscriptionUpdated, nil
}

// Unsubscribe removes the user from the tier at req.Price. Empty tiers are
// dropped and a record left with no tiers is deleted.
func (e *Engine) Unsubscribe(ctx context.Context, req SubscriptionRequest) (UnsubscribeOutcome, error) {
	ctx, span := e.tracer.Start(ctx, "engine.Unsubscribe", trace.WithAttributes(
		attribute.Int("service_id", req.ServiceID),
		attribute.Int("price", req.Price),
	))
	defer span.End()

	userID, err := e.parseRequest(req)
	if err != nil {
		return "", err
	}

	rec, err := e.store.GetServiceAlert(ctx, req.ServiceID)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrServiceNotMonitored
	}
	if err != nil {
		return "", e.persistenceError(ctx, span, "loading service alert", err)
	}

	tier := rec.Tier(req.Price)
	if tier == nil {
		return "", ErrPriceTierNotFound
	}
	if !tier.RemoveSubscriber(userID) {
		return "", ErrNotSubscribed
	}
	if len(tier.Subscribers) == 0 {
		rec.RemoveTier(req.Price)
	}

	outcome := Unsubscribed
	if len(rec.Tiers) == 0 {
		if err := e.store.DeleteServiceAlert(ctx, req.ServiceID); err != nil {
			return "", e.persistenceError(ctx, span, "deleting service alert", err)
		}
		outcome = AlertRecordDeleted
	} else if err := e.store.UpsertServiceAlert(ctx, rec); err != nil {
		return "", e.persistenceError(ctx, span, "updating service alert", err)
	}

	metrics.SubscriptionsRemovedTotal.Inc()
	e.log.InfoContext(ctx, "user unsubscribed",
		"user_id", userID,
		"service_id", req.ServiceID,
		"price", req.Price,
		"outcome", outcome,
	)
	return outcome, nil
}

// ListUserSubscriptions returns the user's subscribed prices per service.
// A user with no subscriptions gets an empty list.
func (e *Engine) ListUserSubscriptions(ctx context.Context, rawUserID string) ([]domain.UserSubscription, error) {
	userID, err := domain.ParseUserID(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubscription, err)
	}

	subs, err := e.store.ListUserSubscriptions(ctx, userID)
	if err != nil {
		e.log.ErrorContext(ctx, "listing user subscriptions failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if subs == nil {
		subs = []domain.UserSubscription{}
	}
	return subs, nil
}

func (e *Engine) parseRequest(req SubscriptionRequest) (domain.UserID, error) {
	if err := e.validate.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSubscription, err)
	}
	userID, err := domain.ParseUserID(req.UserID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSubscription, err)
	}
	return userID, nil
}

func (e *Engine) verifyService(ctx context.Context, serviceID int) error {
	if !e.verifyServices {
		return nil
	}
	services, err := e.catalog.ListServices(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if _, ok := catalog.FindService(services, serviceID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownService, serviceID)
	}
	return nil
}

func (e *Engine) subscribed(ctx context.Context, req SubscriptionRequest, userID domain.UserID, outcome SubscribeOutcome) {
	metrics.SubscriptionsCreatedTotal.Inc()
	e.log.InfoContext(ctx, "user subscribed",
		"user_id", userID,
		"service_id", req.ServiceID,
		"price", req.Price,
		"outcome", outcome,
	)
}

func (e *Engine) persistenceError(ctx context.Context, span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	e.log.ErrorContext(ctx, "alert store operation failed", "operation", op, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
