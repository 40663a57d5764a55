package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/geims/bedboard/internal/config"
	"github.com/geims/bedboard/internal/domain/bedstatus"
	"github.com/geims/bedboard/internal/domain/ward"
	"github.com/geims/bedboard/internal/platform/auth"
	"github.com/geims/bedboard/internal/platform/db"
	"github.com/geims/bedboard/internal/platform/metrics"
)

// app holds everything serve and the CLI write path share.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	catalog *ward.Catalog
	store   bedstatus.Store
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
	svc     *bedstatus.Service
	guards  guards
}

type guards struct {
	// passwords accepts the configured admin password or hash.
	passwords auth.Guard
	// admin accepts passwords and, when enabled, session tokens.
	admin   auth.Guard
	issuer  *auth.TokenIssuer
	revoked *auth.RevocationList
}

// revocationSweep is how often expired logout entries are dropped.
const revocationSweep = 5 * time.Minute

func buildGuards(cfg *config.Config) (guards, error) {
	var pw auth.AnyGuard
	if cfg.AdminPassword != "" {
		pw = append(pw, auth.NewPasswordGuard(cfg.AdminPassword))
	}
	if cfg.AdminPasswordHash != "" {
		bg, err := auth.NewBcryptGuard(cfg.AdminPasswordHash)
		if err != nil {
			return guards{}, bedstatus.ConfigError("%v", err)
		}
		pw = append(pw, bg)
	}

	g := guards{passwords: pw, admin: pw}
	if cfg.TokensEnabled() {
		iss, err := auth.NewTokenIssuer(cfg.AdminTokenSecret, cfg.AdminTokenTTL)
		if err != nil {
			return guards{}, bedstatus.ConfigError("%v", err)
		}
		g.issuer = iss
		g.revoked = auth.NewRevocationList(revocationSweep)
		g.admin = auth.AnyGuard{pw, auth.NewTokenGuard(iss).WithRevocations(g.revoked)}
	}
	return g, nil
}

// openStore opens the configured backend. Any failure is a configuration
// error: the board never starts against an unreachable store.
func openStore(ctx context.Context, cfg *config.Config) (bedstatus.Store, *pgxpool.Pool, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return bedstatus.NewMemoryStore(), nil, nil
	case config.BackendRedis:
		s, err := bedstatus.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisHashKey)
		if err != nil {
			return nil, nil, bedstatus.ConfigError("open redis store: %w", err)
		}
		return s, nil, nil
	case config.BackendSQLite:
		s, err := bedstatus.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, bedstatus.ConfigError("open sqlite store: %w", err)
		}
		return s, nil, nil
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfig{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
		if err != nil {
			return nil, nil, bedstatus.ConfigError("open postgres store: %w", err)
		}
		return bedstatus.NewPGStore(pool), pool, nil
	default:
		return nil, nil, bedstatus.ConfigError("unknown store backend %q", cfg.StoreBackend)
	}
}

// openApp loads the catalog, opens the store and wires the service. m may
// be nil.
func openApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, m *metrics.Metrics) (*app, error) {
	catalog, err := ward.Load(cfg.CatalogFile)
	if err != nil {
		return nil, bedstatus.ConfigError("load catalog: %w", err)
	}
	g, err := buildGuards(cfg)
	if err != nil {
		return nil, err
	}
	store, pool, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		store:   store,
		pool:    pool,
		metrics: m,
		svc:     bedstatus.NewService(store, catalog, logger, m, cfg.StoreTimeout),
		guards:  g,
	}, nil
}

func (a *app) Close() {
	if a.guards.revoked != nil {
		a.guards.revoked.Close()
	}
	if c, ok := a.store.(bedstatus.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("closing store")
		}
	}
}

// healthDetails adds pool statistics for the postgres backend.
func (a *app) healthDetails() func() any {
	if a.pool == nil {
		return nil
	}
	return func() any { return db.GetPoolStats(a.pool) }
}
