package outbound

import (
	"context"

	"github.com/uniedit/anet/internal/model"
)

// ProfileObserverPort receives customer profile facts after they are committed.
// Implementations must not block for long and cannot fail the caller.
type ProfileObserverPort interface {
	Notify(ctx context.Context, fact model.ProfileFact)
}

// ProfileFactPublisherPort forwards a profile fact to an external channel.
type ProfileFactPublisherPort interface {
	// Publish sends the fact to subscribers.
	Publish(ctx context.Context, fact model.ProfileFact) error
}
