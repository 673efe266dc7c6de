package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/pkg/config"
	"github.com/bookverse/bookverse-backend/pkg/redis"
)

// ErrNotPersisted signals that no cart payload exists for the user yet.
var ErrNotPersisted = errors.New("cart: no persisted payload")

// Persister stores and retrieves serialized cart payloads. Load returns
// ErrNotPersisted when the user has never saved a cart.
type Persister interface {
	Load(ctx context.Context, userID uuid.UUID) ([]byte, error)
	Save(ctx context.Context, userID uuid.UUID, payload []byte) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type redisPersister struct {
	client *redis.Client
	cfg    config.CartConfig
}

// NewRedisPersister persists carts under one Redis key per user.
func NewRedisPersister(client *redis.Client, cfg config.CartConfig) Persister {
	return &redisPersister{client: client, cfg: cfg}
}

func (p *redisPersister) Load(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	payload, err := p.client.Get(ctx, p.client.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotPersisted
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (p *redisPersister) Save(ctx context.Context, userID uuid.UUID, payload []byte) error {
	return p.client.Set(ctx, p.client.CartKey(userID.String()), payload, p.cfg.TTL)
}

func (p *redisPersister) Delete(ctx context.Context, userID uuid.UUID) error {
	return p.client.Del(ctx, p.client.CartKey(userID.String()))
}
