package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voltkart/storefront/internal/config"
)

// DefaultStorageKey matches the key the browser client persisted under.
const DefaultStorageKey = "cart-storage"

// Store is the explicit serialize/deserialize boundary for cart state: one
// record holding the whole State, read at startup and written on every
// mutation.
type Store interface {
	Load(ctx context.Context) (State, bool, error)
	Save(ctx context.Context, state State) error
}

func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Redis connection established", slog.String("host", cfg.Host))

	return client, nil
}

type redisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable, key string) Store {

	if key == "" {
		key = DefaultStorageKey
	}

	return &redisStore{client: client, key: key}
}

func (r *redisStore) Load(ctx context.Context) (State, bool, error) {

	var state State

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return state, false, nil
		}

		return state, false, fmt.Errorf("failed to get key %s from redis: %w", r.key, err)
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return state, false, fmt.Errorf("failed to unmarshal cart state: %w", err)
	}

	return state, true, nil
}

func (r *redisStore) Save(ctx context.Context, state State) error {

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal cart state: %w", err)
	}

	// carts survive restarts, no TTL
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", r.key, err)
	}

	return nil
}

// memoryStore backs tests and local runs without Redis.
type memoryStore struct {
	mu    sync.Mutex
	state State
	found bool
}

func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load(ctx context.Context) (State, bool, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state, m.found, nil
}

func (m *memoryStore) Save(ctx context.Context, state State) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = state
	m.found = true

	return nil
}
