// Package redis publishes serial lifecycle events over Redis pub/sub so
// dashboards and andon displays can react without polling the database.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"mestrack/internal/core/ports"

	goredis "github.com/go-redis/redis/v8"
)

const (
	// TransitionChannel carries serial state change events.
	TransitionChannel = "mestrack.transitions"
	// StalledClaimChannel carries stalled claim alerts.
	StalledClaimChannel = "mestrack.stalled_claims"
)

var _ ports.Notifier = &Notifier{}

// Notifier publishes events to Redis channels. Publishing is
// fire-and-forget: failures are logged and never returned to the caller.
type Notifier struct {
	client *goredis.Client
	logger *slog.Logger
}

// NewNotifier creates a Notifier over the given Redis client.
func NewNotifier(client *goredis.Client, logger *slog.Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

// PublishTransition sends a serial state change event.
func (n *Notifier) PublishTransition(ctx context.Context, event ports.TransitionEvent) {
	n.publish(ctx, TransitionChannel, event)
}

// PublishStalledClaim sends a stalled claim alert.
func (n *Notifier) PublishStalledClaim(ctx context.Context, event ports.StalledClaimEvent) {
	n.publish(ctx, StalledClaimChannel, event)
}

func (n *Notifier) publish(ctx context.Context, channel string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal event", "channel", channel, "error", err)
		return
	}

	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		n.logger.Error("publish event", "channel", channel, "error", err)
	}
}
