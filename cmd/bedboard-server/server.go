package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/geims/bedboard/internal/config"
	"github.com/geims/bedboard/internal/domain/bedstatus"
	"github.com/geims/bedboard/internal/platform/auth"
	"github.com/geims/bedboard/internal/platform/db"
	"github.com/geims/bedboard/internal/platform/metrics"
	"github.com/geims/bedboard/internal/platform/middleware"
)

const (
	version         = "0.1.0"
	shutdownTimeout = 10 * time.Second
	adminBodyLimit  = "16K"
)

func runServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return bedstatus.ConfigError("%v", err)
	}
	if cfg.IsDev() && !cfg.HasAdminCredential() {
		logger.Warn().Msg("no ADMIN_PASSWORD or ADMIN_PASSWORD_HASH set; admin writes are disabled")
	}

	m := metrics.New()
	a, err := openApp(ctx, cfg, logger, m)
	if err != nil {
		logger.Error().Err(err).Msg("startup failed")
		return err
	}
	defer a.Close()
	logger.Info().
		Str("backend", cfg.StoreBackend).
		Int("wards", len(a.catalog.ListWards())).
		Int("beds", a.catalog.Len()).
		Msg("bed store ready")

	e := newServer(a)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
			return err
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newServer(a *app) *echo.Echo {
	cfg := a.cfg
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(a.metrics.Middleware())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader, auth.PasswordHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/store", db.HealthHandler(cfg.StoreBackend, a.svc, a.healthDetails()))
	e.GET("/metrics", echo.WrapHandler(a.metrics.Handler()))

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	if cfg.RateLimitRPS > 0 {
		rateLimitCfg.RequestsPerSecond = cfg.RateLimitRPS
	}
	if cfg.RateLimitBurst > 0 {
		rateLimitCfg.BurstSize = cfg.RateLimitBurst
	}

	api := e.Group("/api/v1",
		middleware.RateLimit(rateLimitCfg),
		middleware.RequestTimeout(cfg.RequestTimeout),
	)
	admin := api.Group("/admin",
		echomw.BodyLimit(adminBodyLimit),
		auth.RequireAdmin(a.guards.admin),
	)

	auth.NewSessionHandler(a.guards.passwords, a.guards.issuer).
		WithRevocations(a.guards.revoked).
		RegisterRoutes(api.Group("", echomw.BodyLimit(adminBodyLimit)))
	bedstatus.NewHandler(a.svc).RegisterRoutes(api, admin)
	return e
}
