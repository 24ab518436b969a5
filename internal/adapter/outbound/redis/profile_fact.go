package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
)

// ProfileFactChannel is the pub/sub channel carrying customer profile facts.
const ProfileFactChannel = "anet:customer-profile"

// profileFactPublisher implements outbound.ProfileFactPublisherPort.
type profileFactPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewProfileFactPublisher creates a publisher on ProfileFactChannel.
func NewProfileFactPublisher(client redis.UniversalClient) outbound.ProfileFactPublisherPort {
	return &profileFactPublisher{client: client, channel: ProfileFactChannel}
}

func (p *profileFactPublisher) Publish(ctx context.Context, fact model.ProfileFact) error {
	payload, err := json.Marshal(fact)
	if err != nil {
		return fmt.Errorf("marshal profile fact: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish profile fact: %w", err)
	}
	return nil
}

// Compile-time check
var _ outbound.ProfileFactPublisherPort = (*profileFactPublisher)(nil)
