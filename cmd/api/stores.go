package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/tienda-api/internal/infrastructure/redis"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// purgeInterval frecuencia de limpieza de tokens revocados vencidos en PostgreSQL.
const purgeInterval = time.Hour

// stores agrupa los adaptadores elegidos por STORE_DRIVER y REVOCATION_STORE.
type stores struct {
	users     repository.UserRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	tx        ordering.TxRunner
	catalogTx usecase.ProductTxRunner
	blacklist repository.TokenBlacklist
	closers   []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	s := &stores{}
	var pool *pgxpool.Pool
	var mem *memory.Store

	switch cfg.Store.Driver {
	case "postgres":
		var err error
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		s.closers = append(s.closers, pool.Close)
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				s.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		s.users = postgres.NewUserRepository(pool)
		s.products = postgres.NewProductRepository(pool)
		s.orders = postgres.NewOrderRepository(pool)
		runner := postgres.NewTxRunner(pool)
		s.tx = runner
		s.catalogTx = runner
	case "memory":
		mem = memory.NewStore()
		s.users = mem.Users()
		s.products = mem.Products()
		s.orders = mem.Orders()
		s.tx = mem
		s.catalogTx = mem
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.Store.Driver)
	}

	switch cfg.Store.Revocation {
	case "postgres":
		if pool == nil {
			s.Close()
			return nil, fmt.Errorf("REVOCATION_STORE=postgres requiere STORE_DRIVER=postgres")
		}
		repo := postgres.NewTokenBlacklistRepository(pool)
		s.blacklist = repo
		purgeCtx, cancel := context.WithCancel(ctx)
		s.closers = append(s.closers, cancel)
		go purgeRevoked(purgeCtx, repo, log)
	case "redis":
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		s.closers = append(s.closers, func() { _ = rdb.Close() })
		s.blacklist = infraredis.NewBlacklist(rdb)
	case "memory":
		if mem == nil {
			mem = memory.NewStore()
		}
		s.blacklist = mem.Blacklist()
	default:
		s.Close()
		return nil, fmt.Errorf("REVOCATION_STORE desconocido %q", cfg.Store.Revocation)
	}
	return s, nil
}

type expiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// purgeRevoked borra periódicamente los jti vencidos hasta que ctx se cancele.
func purgeRevoked(ctx context.Context, repo expiredPurger, log *logger.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de tokens revocados")
				continue
			}
			if n > 0 {
				log.Debug().Int64("eliminados", n).Msg("tokens revocados vencidos purgados")
			}
		}
	}
}
