package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/server-price-alerts/internal/catalog"
	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSubscriptionsTable(w io.Writer, subs []domain.UserSubscription) error {
	tw := newTabWriter(w)
	tw.writef("SERVICE\tPRICES\n")
	for _, s := range subs {
		prices := make([]string, len(s.Prices))
		for i, p := range s.Prices {
			prices[i] = strconv.Itoa(p) + "€"
		}
		tw.writef("%d\t%s\n", s.ServiceID, strings.Join(prices, ", "))
	}
	return tw.finish()
}

func printServicesTable(w io.Writer, services []domain.Service) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCPU\tRAM\tREGION\tDISKS\tGPU\n")
	for i := range services {
		s := &services[i]
		gpu := s.GPU
		if gpu == "" {
			gpu = "-"
		}
		tw.writef("%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ServiceID,
			truncate(s.CPU, 32),
			s.RAM,
			s.Region,
			formatDisks(s.Disks),
			gpu,
		)
	}
	return tw.finish()
}

func printSuggestionsTable(w io.Writer, suggestions []catalog.Suggestion) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tVALUE\n")
	for _, s := range suggestions {
		tw.writef("%s\t%s\n", s.Name, s.Value)
	}
	return tw.finish()
}

func printPricesTable(w io.Writer, points []domain.PricePoint) error {
	tw := newTabWriter(w)
	tw.writef("SERVICE\tPRICE\n")
	for _, p := range points {
		tw.writef("%d\t%s€\n", p.ID, p.LatestPrice.StringFixed(2))
	}
	return tw.finish()
}

func printHistoryTable(w io.Writer, history []domain.PriceHistory) error {
	tw := newTabWriter(w)
	tw.writef("SERVICE\tTIMESTAMP\tPRICE\n")
	for _, h := range history {
		for _, s := range h.History {
			tw.writef("%d\t%s\t%s€\n", h.ID, s.Timestamp.Format("2006-01-02 15:04"), s.Price.StringFixed(2))
		}
	}
	return tw.finish()
}

func printCycleReport(w io.Writer, r domain.CycleReport) error {
	tw := newTabWriter(w)
	tw.writef("Services monitored:\t%d\n", r.ServicesMonitored)
	tw.writef("Prices received:\t%d\n", r.PricesReceived)
	tw.writef("Tiers fired:\t%d\n", r.TiersFired)
	tw.writef("Tiers re-armed:\t%d\n", r.TiersRearmed)
	tw.writef("Deliveries:\t%d (%d failed)\n", r.DeliveriesAttempted, r.DeliveriesFailed)
	tw.writef("Persist failures:\t%d\n", r.PersistFailures)
	tw.writef("Records skipped:\t%d\n", r.RecordsSkipped)
	return tw.finish()
}

func formatDisks(disks []domain.Disk) string {
	if len(disks) == 0 {
		return "-"
	}
	parts := make([]string, len(disks))
	for i, d := range disks {
		parts[i] = fmt.Sprintf("%dx %dGB %s", d.Quantity, d.CapacityGB, d.Type)
	}
	return strings.Join(parts, ", ")
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
