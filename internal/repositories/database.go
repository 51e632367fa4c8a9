package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/voltkart/storefront/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/singleflight"
)

// Store owns the document-store client. The connection is dialed lazily on
// first use; concurrent callers share a single dial via singleflight, and a
// failed dial leaves the handle empty so the next call retries fresh.
type Store struct {
	cfg *config.Mongo

	sf singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
}

func NewStore(cfg *config.Mongo) *Store {
	return &Store{cfg: cfg}
}

func (s *Store) Client(ctx context.Context) (*mongo.Client, error) {

	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	if client != nil {
		return client, nil
	}

	v, err, _ := s.sf.Do("connect", func() (any, error) {

		// another caller may have won the race before this flight started
		s.mu.RLock()
		existing := s.client
		s.mu.RUnlock()

		if existing != nil {
			return existing, nil
		}

		dialCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(s.cfg.URI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to the document store: %w", err)
		}

		if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to reach the document store: %w", err)
		}

		s.mu.Lock()
		s.client = client
		s.mu.Unlock()

		slog.Info("Document store connection established", slog.String("database", s.cfg.Database))

		return client, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*mongo.Client), nil
}

func (s *Store) Database(ctx context.Context) (*mongo.Database, error) {

	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}

	return client.Database(s.cfg.Database), nil
}

func (s *Store) Close(ctx context.Context) error {

	s.mu.Lock()
	client := s.client
	s.client = nil
	s.mu.Unlock()

	if client == nil {
		return nil
	}

	return client.Disconnect(ctx)
}
