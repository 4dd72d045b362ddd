package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/server-price-alerts/internal/metrics"
)

// Scheduler runs the price check cycle on a fixed interval.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	priceCheckEntryID cron.EntryID
}

// NewScheduler creates a Scheduler that runs a price check every interval.
func NewScheduler(eng *Engine, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("price check interval must be positive, got %s", interval)
	}

	c := cron.New()
	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runPriceCheck)
	if err != nil {
		return nil, fmt.Errorf("scheduling price check: %w", err)
	}
	s.priceCheckEntryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamp()
}

// Stop gracefully stops the scheduler, waiting for a running check to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamp publishes the next scheduled price check time.
func (s *Scheduler) SyncNextRunTimestamp() {
	next := s.cron.Entry(s.priceCheckEntryID).Next
	if next.IsZero() {
		return
	}
	metrics.SchedulerNextPriceCheckTimestamp.Set(float64(next.Unix()))
}

func (s *Scheduler) runPriceCheck() {
	defer s.SyncNextRunTimestamp()

	s.log.Info("scheduled price check starting")
	_, err := s.engine.RunPriceCheck(context.Background())
	switch {
	case errors.Is(err, ErrPriceCheckRunning):
		s.log.Warn("scheduled price check skipped: previous check still running")
	case err != nil:
		s.log.Error("scheduled price check failed", "error", err)
	}
}
