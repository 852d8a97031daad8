package kvstore

import (
	"context"
	"fmt"

	"github.com/angelmondragon/electroquick/pkg/config"
	"github.com/angelmondragon/electroquick/pkg/db"
	"github.com/angelmondragon/electroquick/pkg/logger"
	"github.com/angelmondragon/electroquick/pkg/migrate"
	"github.com/angelmondragon/electroquick/pkg/redis"
)

// Opened bundles a backend with the function releasing its connections.
type Opened struct {
	Backend Backend
	Close   func() error
}

// Open builds the backend selected by cfg.Storage, running migrations for SQL
// backends when auto-migrate is on.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Opened, error) {
	backend := cfg.Storage.NormalizedBackend()
	ctx = logg.WithField(ctx, "storage_backend", backend)

	switch backend {
	case config.StorageMemory:
		logg.Warn(ctx, "memory storage selected; cart will not survive restarts")
		return &Opened{Backend: NewMemory(), Close: func() error { return nil }}, nil

	case config.StorageSQLite, config.StoragePostgres:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		store, err := NewSQL(client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &Opened{Backend: store, Close: client.Close}, nil

	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		store, err := NewRedis(client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &Opened{Backend: store, Close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
}
