package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/bookverse/bookverse-backend/pkg/currency"
	"github.com/bookverse/bookverse-backend/pkg/logger"
	"github.com/bookverse/bookverse-backend/pkg/redis"
)

// BalanceUpdate is the payload pushed to balance subscribers.
type BalanceUpdate struct {
	BalanceCents     int64  `json:"balance"`
	BalanceFormatted string `json:"balance_formatted"`
}

// Subscription is a live balance feed. Close is idempotent and releases the
// underlying pub/sub resources; Updates is closed afterwards.
type Subscription interface {
	Updates() <-chan BalanceUpdate
	Close() error
}

// Watcher opens balance subscriptions. The subscription stays live until the
// caller closes it or ctx ends, whichever comes first.
type Watcher interface {
	Watch(ctx context.Context, userID uuid.UUID) (Subscription, error)
}

// Publisher pushes a new balance to any open subscriptions for the profile.
type Publisher interface {
	PublishBalance(ctx context.Context, userID uuid.UUID, balanceCents int64) error
}

// Broker carries balance updates over one Redis pub/sub channel per profile.
// It serves as both the Watcher and the Publisher side.
type Broker struct {
	client *redis.Client
	logg   *logger.Logger
}

// NewBroker wires a balance broker over the shared Redis client.
func NewBroker(client *redis.Client, logg *logger.Logger) (*Broker, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Broker{client: client, logg: logg}, nil
}

func (b *Broker) PublishBalance(ctx context.Context, userID uuid.UUID, balanceCents int64) error {
	payload, err := json.Marshal(BalanceUpdate{
		BalanceCents:     balanceCents,
		BalanceFormatted: currency.FormatBRL(balanceCents),
	})
	if err != nil {
		return fmt.Errorf("encoding balance update: %w", err)
	}
	return b.client.Publish(ctx, b.client.BalanceChannel(userID.String()), payload)
}

func (b *Broker) Watch(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	pubsub := b.client.Subscribe(ctx, b.client.BalanceChannel(userID.String()))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribing to balance channel: %w", err)
	}

	sub := &redisSubscription{
		pubsub:  pubsub,
		updates: make(chan BalanceUpdate, 1),
		done:    make(chan struct{}),
	}
	go sub.pump(ctx, b.logg)
	return sub, nil
}

type redisSubscription struct {
	pubsub  *goredis.PubSub
	updates chan BalanceUpdate
	done    chan struct{}
	once    sync.Once
}

func (s *redisSubscription) Updates() <-chan BalanceUpdate {
	return s.updates
}

func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func (s *redisSubscription) pump(ctx context.Context, logg *logger.Logger) {
	defer close(s.updates)
	messages := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var update BalanceUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				logg.Warn(ctx, fmt.Sprintf("dropping malformed balance update: %v", err))
				continue
			}
			select {
			case s.updates <- update:
			case <-s.done:
				return
			case <-ctx.Done():
				_ = s.Close()
				return
			}
		}
	}
}
