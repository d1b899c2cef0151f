// HomePick - Appliance Recommendation Engine for Korean Households
// Copyright 2026 D.W. Kim (dwkim-lab)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dwkim-lab/homepick

package policy

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/dwkim-lab/homepick/internal/logging"
)

// TopicInvalidated carries cache invalidation events after a policy save.
const TopicInvalidated = "policy.invalidated"

// InvalidationEvent is the payload published on TopicInvalidated.
type InvalidationEvent struct {
	TasteID int `json:"taste_id"`
}

// Bus is an in-process Watermill pub/sub for policy events. A single
// process serves the whole engine, so the gochannel transport is enough.
type Bus struct {
	pubSub *gochannel.GoChannel
}

// NewBus creates the policy event bus.
func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermill.NewSlogLogger(logging.NewSlogLogger())),
	}
}

// PublishInvalidation announces that a taste's policy changed.
func (b *Bus) PublishInvalidation(tasteID int) error {
	payload, err := json.Marshal(InvalidationEvent{TasteID: tasteID})
	if err != nil {
		return fmt.Errorf("marshal invalidation event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(TopicInvalidated, msg); err != nil {
		return fmt.Errorf("publish invalidation event: %w", err)
	}
	return nil
}

// Subscribe returns the invalidation event stream.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, TopicInvalidated)
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}

// InvalidationSubscriber consumes invalidation events and drops the
// matching registry cache entries. It implements suture.Service.
type InvalidationSubscriber struct {
	bus      *Bus
	registry *Registry
}

// NewInvalidationSubscriber wires a subscriber to a bus and registry.
func NewInvalidationSubscriber(bus *Bus, registry *Registry) *InvalidationSubscriber {
	return &InvalidationSubscriber{bus: bus, registry: registry}
}

// Serve consumes events until the context is canceled or the bus closes.
func (s *InvalidationSubscriber) Serve(ctx context.Context) error {
	logger := logging.WithComponent("policy-subscriber")

	msgs, err := s.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("invalidation channel closed")
			}

			var ev InvalidationEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				logger.Warn().Err(err).Str("message_id", msg.UUID).
					Msg("Dropping malformed invalidation event")
				msg.Ack()
				continue
			}

			s.registry.Invalidate(ev.TasteID)
			logger.Debug().Int("taste_id", ev.TasteID).Msg("Policy cache invalidated")
			msg.Ack()
		}
	}
}

// String names the service in supervisor logs.
func (s *InvalidationSubscriber) String() string {
	return "policy-invalidation-subscriber"
}
