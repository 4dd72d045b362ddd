package notify

import (
	"context"
	"log/slog"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

// NoOpTransport implements Transport by logging discarded messages. It is
// used when no notification backend is configured.
type NoOpTransport struct {
	log *slog.Logger
}

// NewNoOpTransport creates a transport that discards messages with a log line.
func NewNoOpTransport(log *slog.Logger) *NoOpTransport {
	return &NoOpTransport{log: log}
}

// SendMessage logs and discards the message.
func (n *NoOpTransport) SendMessage(_ context.Context, userID domain.UserID, text string) error {
	n.log.Debug("notification discarded (no backend configured)",
		"user_id", userID,
		"length", len(text),
	)
	return nil
}
