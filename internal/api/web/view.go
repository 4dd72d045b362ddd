// Package web renders the HTML status page. Templates live in *.templ files;
// run `templ generate` after editing them.
package web

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// Tier states shown on the status page.
const (
	StateWatching = "watching"
	StateNotified = "notified"
)

// AlertRow is one tier of one service alert.
type AlertRow struct {
	ServiceID   int
	Threshold   string
	State       string
	Subscribers int
	Updated     string
}

// AlertsView is the data rendered by AlertsPage.
type AlertsView struct {
	Rows          []AlertRow
	Services      int
	Tiers         int
	Subscriptions int
}

// NewAlertsView flattens alerts into rows ordered by service id, then by
// threshold from highest to lowest.
func NewAlertsView(alerts []domain.ServiceAlert) AlertsView {
	sorted := slices.Clone(alerts)
	slices.SortFunc(sorted, func(a, b domain.ServiceAlert) int {
		return cmp.Compare(a.ServiceID, b.ServiceID)
	})

	v := AlertsView{Services: len(sorted), Rows: []AlertRow{}}
	for _, a := range sorted {
		tiers := slices.Clone(a.Tiers)
		slices.SortFunc(tiers, func(x, y domain.AlertTier) int {
			return cmp.Compare(y.Price, x.Price)
		})

		updated := "-"
		if !a.UpdatedAt.IsZero() {
			updated = a.UpdatedAt.UTC().Format(time.RFC3339)
		}

		for _, t := range tiers {
			state := StateWatching
			if t.Armed {
				state = StateNotified
			}
			v.Rows = append(v.Rows, AlertRow{
				ServiceID:   a.ServiceID,
				Threshold:   "<= " + strconv.Itoa(t.Price),
				State:       state,
				Subscribers: len(t.Subscribers),
				Updated:     updated,
			})
			v.Tiers++
			v.Subscriptions += len(t.Subscribers)
		}
	}
	return v
}
