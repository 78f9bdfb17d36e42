package session

import (
	"context"
	"fmt"
	"log/slog"

	"starline-salvage/internal/shared/config"
	"starline-salvage/internal/shared/database"
	sharedredis "starline-salvage/internal/shared/redis"
)

// Open builds the store selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	logger = logger.With("component", "session_store", "backend", cfg.Store.Backend)

	switch cfg.Store.Backend {
	case "memory":
		return NewMemoryStore(nil, logger), nil
	case "postgres", "sqlite":
		db, err := database.Connect()
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate session store: %w", err)
		}
		return NewSQLStore(db, nil, logger), nil
	case "redis":
		client, err := sharedredis.Connect(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Store.IdleTTL, nil, logger), nil
	default:
		return nil, fmt.Errorf("unknown session store backend %q", cfg.Store.Backend)
	}
}
