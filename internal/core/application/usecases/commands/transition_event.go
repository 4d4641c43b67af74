package commands

import (
	"time"

	"mestrack/internal/core/domain/model/kernel"
	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/core/ports"
)

// recordTransitionEvent assembles the notification payload for a record
// transition that already committed.
func recordTransitionEvent(
	s *serial.Serial,
	operationID kernel.UUID,
	recordStatus serial.RecordStatus,
	actorID kernel.UUID,
) ports.TransitionEvent {
	return ports.TransitionEvent{
		SerialCode:   s.Code().String(),
		SerialStatus: s.Status().String(),
		OperationID:  operationID.String(),
		RecordStatus: recordStatus.String(),
		ActorID:      actorID.String(),
		OccurredAt:   time.Now().UTC(),
	}
}
