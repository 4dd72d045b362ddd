package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/server-price-alerts/internal/api"
	"github.com/donaldgifford/server-price-alerts/internal/engine"
	"github.com/donaldgifford/server-price-alerts/internal/telemetry"
	"github.com/donaldgifford/server-price-alerts/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and price check scheduler",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "apply store migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, Version, log)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer runCloser(shutdownTelemetry, log, "telemetry")

	st, pool, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer runCloser(closeStore, log, "store")

	if autoMigrate {
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	provider, closeCatalog, err := openCatalog(ctx, cfg.Catalog, pool, log)
	if err != nil {
		return err
	}
	defer runCloser(closeCatalog, log, "catalog")

	transport, closeTransport := buildTransport(cfg.Notifications, log)
	defer runCloser(closeTransport, log, "notifications")

	eng := engine.NewEngine(st, provider, transport,
		engine.WithLogger(log),
		engine.WithDeliveryConcurrency(cfg.Notifications.Concurrency),
		engine.WithDeliveryTimeout(cfg.Notifications.Timeout),
		engine.WithServiceVerification(*cfg.Catalog.VerifyServices),
	)

	sched, err := engine.NewScheduler(eng, cfg.Schedule.PriceCheckInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e, _ := api.NewServer(api.Deps{
		Store:      st,
		Alerts:     eng,
		Catalog:    provider,
		PriceCheck: eng,
	}, Version, api.WithLogger(log))
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server",
		"addr", addr,
		"driver", cfg.Database.Driver,
		"catalog", cfg.Catalog.Source,
		"price_check_interval", cfg.Schedule.PriceCheckInterval,
	)

	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			log.Error("server error", "error", err)
		}
	}

	log.Info("shutting down server")

	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
