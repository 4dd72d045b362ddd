package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	"github.com/donaldgifford/server-price-alerts/internal/metrics"
	"github.com/donaldgifford/server-price-alerts/internal/notify"
	"github.com/donaldgifford/server-price-alerts/internal/store"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// RunPriceCheck fetches the latest price of every monitored service, fires
// tiers whose threshold was reached and re-arms tiers whose price recovered.
// Delivery and persistence failures are isolated per recipient and per
// record; only a failure to list records or fetch prices aborts the cycle.
func (e *Engine) RunPriceCheck(ctx context.Context) (domain.CycleReport, error) {
	var report domain.CycleReport

	if !e.checkMu.TryLock() {
		return report, ErrPriceCheckRunning
	}
	defer e.checkMu.Unlock()

	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "engine.RunPriceCheck")
	defer span.End()

	metrics.PriceCheckRunsTotal.Inc()
	defer func() {
		metrics.PriceCheckDuration.Observe(time.Since(start).Seconds())
	}()

	alerts, err := e.store.ListServiceAlerts(ctx)
	if err != nil {
		metrics.PriceCheckAbortedTotal.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "listing service alerts")
		e.log.ErrorContext(ctx, "price check aborted: listing service alerts", "error", err)
		return report, fmt.Errorf("%w: listing service alerts: %w", ErrPersistence, err)
	}

	report.ServicesMonitored = len(alerts)
	metrics.ServicesMonitored.Set(float64(len(alerts)))
	if len(alerts) == 0 {
		e.log.DebugContext(ctx, "price check skipped: no services monitored")
		return report, nil
	}

	ids := make([]int, 0, len(alerts))
	for i := range alerts {
		ids = append(ids, alerts[i].ServiceID)
	}

	prices, err := e.catalog.LatestPrices(ctx, ids)
	if err != nil {
		metrics.PriceCheckAbortedTotal.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetching latest prices")
		e.log.ErrorContext(ctx, "price check aborted: fetching latest prices",
			"services", len(ids),
			"error", err,
		)
		return report, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	report.PricesReceived = len(prices)

	services := &serviceIndex{catalog: e.catalog, log: e.log}
	for _, p := range prices {
		if err := ctx.Err(); err != nil {
			e.log.WarnContext(ctx, "price check interrupted", "error", err)
			e.finishCycle(ctx, span, report, start)
			return report, err
		}
		e.checkService(ctx, p, services, &report)
	}

	e.finishCycle(ctx, span, report, start)
	return report, nil
}

// checkService applies one observed price to the current version of its
// alert record.
func (e *Engine) checkService(
	ctx context.Context,
	p domain.PricePoint,
	services *serviceIndex,
	report *domain.CycleReport,
) {
	rec, err := e.store.GetServiceAlert(ctx, p.ID)
	if err != nil {
		report.RecordsSkipped++
		if !errors.Is(err, store.ErrNotFound) {
			e.log.ErrorContext(ctx, "loading service alert", "service_id", p.ID, "error", err)
		}
		return
	}

	var fired []domain.AlertTier
	changed := false
	for i := range rec.Tiers {
		tier := &rec.Tiers[i]
		switch {
		case tier.ShouldFire(p.LatestPrice):
			tier.Armed = true
			changed = true
			report.TiersFired++
			metrics.AlertsFiredTotal.Inc()
			fired = append(fired, *tier)
			e.log.InfoContext(ctx, "alert fired",
				"service_id", rec.ServiceID,
				"price", tier.Price,
				"observed", p.LatestPrice.String(),
				"subscribers", len(tier.Subscribers),
			)
		case tier.ShouldRearm(p.LatestPrice):
			tier.Armed = false
			changed = true
			report.TiersRearmed++
			metrics.TiersRearmedTotal.Inc()
			e.log.DebugContext(ctx, "alert re-armed",
				"service_id", rec.ServiceID,
				"price", tier.Price,
				"observed", p.LatestPrice.String(),
			)
		}
	}

	if len(fired) > 0 {
		svc := services.find(ctx, rec.ServiceID)
		attempted, failed := e.deliver(ctx, rec.ServiceID, p.LatestPrice, fired, svc)
		report.DeliveriesAttempted += attempted
		report.DeliveriesFailed += failed
	}

	if !changed {
		return
	}
	if err := e.store.UpsertServiceAlert(ctx, rec); err != nil {
		report.PersistFailures++
		metrics.PersistFailuresTotal.Inc()
		e.log.ErrorContext(ctx, "persisting tier state", "service_id", rec.ServiceID, "error", err)
	}
}

// deliver notifies every subscriber of the fired tiers. All deliveries are
// attempted; failures are counted and logged.
func (e *Engine) deliver(
	ctx context.Context,
	serviceID int,
	observed decimal.Decimal,
	tiers []domain.AlertTier,
	svc *domain.Service,
) (attempted, failed int) {
	var failures atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(e.deliveryConcurrency)

	for _, tier := range tiers {
		text := notify.FormatAlert(notify.Alert{
			ServiceID: serviceID,
			Threshold: tier.Price,
			Observed:  observed,
			Service:   svc,
		})
		for _, userID := range tier.Subscribers {
			attempted++
			g.Go(func() error {
				callCtx, cancel := context.WithTimeout(ctx, e.deliveryTimeout)
				defer cancel()

				if err := e.transport.SendMessage(callCtx, userID, text); err != nil {
					failures.Add(1)
					metrics.NotificationFailuresTotal.Inc()
					e.log.WarnContext(ctx, "notification delivery failed",
						"service_id", serviceID,
						"user_id", userID,
						"price", tier.Price,
						"error", err,
					)
					return nil
				}
				metrics.NotificationsSentTotal.Inc()
				return nil
			})
		}
	}
	_ = g.Wait()

	return attempted, int(failures.Load())
}

func (e *Engine) finishCycle(ctx context.Context, span trace.Span, report domain.CycleReport, start time.Time) {
	span.SetAttributes(
		attribute.Int("services_monitored", report.ServicesMonitored),
		attribute.Int("tiers_fired", report.TiersFired),
		attribute.Int("tiers_rearmed", report.TiersRearmed),
		attribute.Int("deliveries_failed", report.DeliveriesFailed),
	)
	e.log.InfoContext(ctx, "price check complete",
		"services", report.ServicesMonitored,
		"prices", report.PricesReceived,
		"fired", report.TiersFired,
		"rearmed", report.TiersRearmed,
		"deliveries", report.DeliveriesAttempted,
		"delivery_failures", report.DeliveriesFailed,
		"persist_failures", report.PersistFailures,
		"skipped", report.RecordsSkipped,
		"duration", time.Since(start),
	)
}

// serviceIndex loads the catalog at most once per cycle, and only when an
// alert fires. A failed load leaves notifications without hardware details.
type serviceIndex struct {
	catalog  catalog.Provider
	log      *slog.Logger
	loaded   bool
	services []domain.Service
}

func (s *serviceIndex) find(ctx context.Context, serviceID int) *domain.Service {
	if !s.loaded {
		s.loaded = true
		services, err := s.catalog.ListServices(ctx)
		if err != nil {
			s.log.WarnContext(ctx, "catalog unavailable for alert details", "error", err)
		}
		s.services = services
	}
	svc, ok := catalog.FindService(s.services, serviceID)
	if !ok {
		return nil
	}
	return &svc
}
