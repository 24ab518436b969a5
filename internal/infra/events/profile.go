package events

import (
	"context"

	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
)

// Customer profile event types.
const (
	CustomerProfileCreated = "CustomerProfileCreated"
	CustomerProfileUpdated = "CustomerProfileUpdated"
)

// ProfileEvent carries a customer profile fact.
type ProfileEvent struct {
	BaseEvent
	Fact model.ProfileFact `json:"fact"`
}

// NewProfileEvent wraps a fact in an event typed by its kind.
func NewProfileEvent(fact model.ProfileFact) *ProfileEvent {
	eventType := CustomerProfileUpdated
	if fact.Kind == model.ProfileFactCreated {
		eventType = CustomerProfileCreated
	}
	return &ProfileEvent{
		BaseEvent: NewBaseEvent(eventType, fact.ProfileID, fact.OccurredAt),
		Fact:      fact,
	}
}

// FactRecorder counts emitted profile facts.
type FactRecorder interface {
	RecordProfileFact(kind string)
}

// NewProfileFactHandler returns a handler that counts each profile fact and
// forwards it to publisher. Either dependency may be nil.
func NewProfileFactHandler(publisher outbound.ProfileFactPublisherPort, recorder FactRecorder) Handler {
	return NewHandlerFunc(
		[]string{CustomerProfileCreated, CustomerProfileUpdated},
		func(ctx context.Context, event Event) error {
			pe, ok := event.(*ProfileEvent)
			if !ok {
				return nil
			}
			if recorder != nil {
				recorder.RecordProfileFact(string(pe.Fact.Kind))
			}
			if publisher == nil {
				return nil
			}
			return publisher.Publish(ctx, pe.Fact)
		},
	)
}
