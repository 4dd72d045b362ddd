// Package notify defines the notification transport interface and its
// implementations for alert delivery.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// ErrDelivery wraps every failed delivery attempt.
var ErrDelivery = errors.New("notification delivery failed")

// Transport delivers a text message to a single user. Delivery is best
// effort; a returned error means this recipient was not reached.
type Transport interface {
	SendMessage(ctx context.Context, userID domain.UserID, text string) error
}

// Alert describes a fired tier for message rendering.
type Alert struct {
	ServiceID int
	Threshold int
	Observed  decimal.Decimal
	// Service is nil when the catalog entry could not be resolved.
	Service *domain.Service
}

// FormatAlert renders the user-facing notification text.
func FormatAlert(a Alert) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Price alert for service %d\n", a.ServiceID)
	fmt.Fprintf(&b, "Current price: %s€ (your alert: %d€)\n", a.Observed.StringFixed(2), a.Threshold)
	if a.Service != nil {
		fmt.Fprintf(&b, "CPU: %s\n", a.Service.CPU)
		if a.Service.RAM != "" {
			fmt.Fprintf(&b, "RAM: %s\n", a.Service.RAM)
		}
		if a.Service.Region != "" {
			fmt.Fprintf(&b, "Datacenter: %s\n", a.Service.Region)
		}
		if a.Service.GPU != "" {
			fmt.Fprintf(&b, "GPU: %s\n", a.Service.GPU)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// MultiTransport sends every message through each of its transports.
type MultiTransport []Transport

// SendMessage succeeds if at least one transport delivered the message.
func (m MultiTransport) SendMessage(ctx context.Context, userID domain.UserID, text string) error {
	var errs []error
	for _, t := range m {
		if err := t.SendMessage(ctx, userID, text); err != nil {
			errs = append(errs, err)
		}
	}
	if len(m) > 0 && len(errs) == len(m) {
		return errors.Join(errs...)
	}
	return nil
}
