package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/server-price-alerts/internal/engine"
	"github.com/donaldgifford/server-price-alerts/pkg/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single price check cycle and exit",
	Long: "Runs one price check against the configured store and catalog, sends due " +
		"notifications and prints the cycle report as JSON. Useful from an external cron.",
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, pool, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer runCloser(closeStore, log, "store")

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
	)

	report, err := eng.RunPriceCheck(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func runCloser(c func(context.Context) error, log *slog.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := c(ctx); err != nil {
		log.Warn("closing "+name, "error", err)
	}
}
