package cache

import (
	"context"

	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis-backed store when Redis is enabled and
// reachable, otherwise an in-memory one.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) shared.IdempotencyStore {
	if cfg.Enabled {
		store, err := NewRedisIdempotencyStore(ctx, cfg.Addr(), cfg.Password, cfg.DB)
		if err == nil {
			log.Info("idempotency keys stored in redis", zap.String("addr", cfg.Addr()))
			return store
		}
		log.Warn("redis unavailable, keeping idempotency keys in memory", zap.Error(err))
	}
	return NewInMemoryIdempotencyStore(0)
}
