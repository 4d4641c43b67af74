package ports

import (
	"context"
	"time"
)

// TransitionEvent describes a state change on a serial that downstream
// consumers (dashboards, andon displays) may react to.
type TransitionEvent struct {
	SerialCode   string    `json:"serial_code"`
	SerialStatus string    `json:"serial_status"`
	OperationID  string    `json:"operation_id,omitempty"`
	RecordStatus string    `json:"record_status,omitempty"`
	ActorID      string    `json:"actor_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// StalledClaimEvent flags an in-progress record whose claim has been held
// past the alert threshold. Claims never expire on their own; somebody has
// to go release or reassign the record.
type StalledClaimEvent struct {
	SerialCode  string    `json:"serial_code"`
	OperationID string    `json:"operation_id"`
	ActorID     string    `json:"actor_id"`
	StartedAt   time.Time `json:"started_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notifier publishes transition and alert events to interested consumers.
// Publishing is fire-and-forget: implementations log failures and never
// propagate them back into the command path.
type Notifier interface {
	PublishTransition(ctx context.Context, event TransitionEvent)
	PublishStalledClaim(ctx context.Context, event StalledClaimEvent)
}
