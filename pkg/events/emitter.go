package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Emitter publishes lifecycle events for saved entities. A nil Emitter is
// valid and drops everything, which is how the service runs with Kafka
// disabled.
type Emitter struct {
	producer *Producer
}

func NewEmitter(producer *Producer) *Emitter {
	if producer == nil {
		return nil
	}
	return &Emitter{producer: producer}
}

func (e *Emitter) Emit(ctx context.Context, eventType, entityType string, orgID, entityID uuid.UUID, payload any) error {
	if e == nil {
		return nil
	}

	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		data = b
	}

	return e.producer.PublishEntityEvent(ctx, &EntityEvent{
		EventType:  eventType,
		OrgID:      orgID.String(),
		EntityID:   entityID.String(),
		EntityType: entityType,
		Data:       data,
	})
}
