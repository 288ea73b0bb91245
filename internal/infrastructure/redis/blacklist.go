// Package redis implementa la lista de tokens revocados sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/config"
)

var _ repository.TokenBlacklist = (*Blacklist)(nil)

const keyPrefix = "revoked:"

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// Blacklist guarda cada jti revocado como clave con TTL igual a la vida restante del token.
type Blacklist struct {
	rdb goredis.Cmdable
	now func() time.Time
}

// NewBlacklist construye el adaptador sobre un cliente (o pipeline) de go-redis.
func NewBlacklist(rdb goredis.Cmdable) *Blacklist {
	return &Blacklist{rdb: rdb, now: time.Now}
}

// Revoke registra el jti. Un token ya vencido no necesita entrada.
func (b *Blacklist) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	ttl := token.ExpiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	if err := b.rdb.Set(ctx, key(token.JTI), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti tiene entrada vigente.
func (b *Blacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := b.rdb.Get(ctx, key(jti)).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis is revoked: %w", err)
	}
	return true, nil
}

func key(jti string) string { return keyPrefix + jti }
