package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/goroutine"
	"tourbook/internal/shared/logger"
)

// DefaultGrantsChannel is used when no channel is configured.
const DefaultGrantsChannel = "tourbook:rbac:grants"

var _ permission.GrantEventPublisher = (*RedisGrantEventBus)(nil)

// grantsEnvelope carries the publishing instance so subscribers can skip their own events.
type grantsEnvelope struct {
	permission.GrantsChangedEvent
	InstanceID string `json:"instance_id"`
}

// RedisGrantEventBus relays grant changes between service instances over Redis Pub/Sub.
type RedisGrantEventBus struct {
	client     *redis.Client
	channel    string
	logger     logger.Interface
	instanceID string
}

func NewRedisGrantEventBus(client *redis.Client, channel string, logger logger.Interface) *RedisGrantEventBus {
	if channel == "" {
		channel = DefaultGrantsChannel
	}
	return &RedisGrantEventBus{
		client:     client,
		channel:    channel,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisGrantEventBus) InstanceID() string {
	return b.instanceID
}

func (b *RedisGrantEventBus) PublishGrantsChanged(ctx context.Context, event permission.GrantsChangedEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(grantsEnvelope{GrantsChangedEvent: event, InstanceID: b.instanceID})
	if err != nil {
		return fmt.Errorf("failed to marshal grants changed event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish grants changed event",
			"role_ids", event.RoleIDs,
			"error", err,
		)
		return fmt.Errorf("failed to publish grants changed event: %w", err)
	}

	b.logger.Debugw("grants changed event published", "role_ids", event.RoleIDs)
	return nil
}

// SubscribeGrantsChanged blocks until ctx is done, reconnecting with
// exponential backoff. Events published by this instance are skipped.
// handler is called in delivery order on the subscribing goroutine.
func (b *RedisGrantEventBus) SubscribeGrantsChanged(ctx context.Context, handler func(event permission.GrantsChangedEvent)) error {
	backoff := newReconnectBackoff(time.Second, 30*time.Second)

	for {
		err := b.subscribe(ctx, backoff.reset, func(payload string) {
			var env grantsEnvelope
			if err := json.Unmarshal([]byte(payload), &env); err != nil {
				b.logger.Warnw("failed to unmarshal grants changed event", "payload", payload, "error", err)
				return
			}
			if env.InstanceID == b.instanceID {
				return
			}
			goroutine.Run(b.logger, "grants-event-handler", func() {
				handler(env.GrantsChangedEvent)
			})
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := backoff.next()
		b.logger.Warnw("grants subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", wait,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (b *RedisGrantEventBus) subscribe(ctx context.Context, onSubscribed func(), handler func(payload string)) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}
	b.logger.Infow("subscribed to grants channel", "channel", b.channel)
	onSubscribed()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			handler(msg.Payload)
		}
	}
}

// reconnectBackoff doubles from initial up to max until reset.
type reconnectBackoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newReconnectBackoff(initial, ceiling time.Duration) *reconnectBackoff {
	return &reconnectBackoff{initial: initial, max: ceiling, current: initial}
}

func (r *reconnectBackoff) next() time.Duration {
	wait := r.current
	r.current = min(r.current*2, r.max)
	return wait
}

func (r *reconnectBackoff) reset() {
	r.current = r.initial
}
