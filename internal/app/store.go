package app

import (
	"context"
	"fmt"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/storefront/internal/infrastructure/db/redis"
	"github.com/99minutos/storefront/internal/infrastructure/db/sqlite"
	"github.com/99minutos/storefront/internal/pkg/config"
)

// OpenStore connects the persisted-state driver named by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (ports.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.SQLite.Path)

	case config.DriverRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client, cfg.Redis.Prefix), nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		store := mongostore.NewStore(client, db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil

	case config.DriverMemory:
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
