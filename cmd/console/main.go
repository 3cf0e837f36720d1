// Command console serves the inventory admin console.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stockmanager/admin-console/internal/api"
	"github.com/stockmanager/admin-console/internal/api/handler"
	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/core/service"
	"github.com/stockmanager/admin-console/internal/infrastructure/apiclient"
	"github.com/stockmanager/admin-console/internal/infrastructure/config"
	"github.com/stockmanager/admin-console/internal/infrastructure/db/redis"
	"github.com/stockmanager/admin-console/internal/infrastructure/notify"
	"github.com/stockmanager/admin-console/internal/infrastructure/tokenstore"
	"github.com/stockmanager/admin-console/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "console:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production(), Service: "console"})

	checks := map[string]handler.DependencyCheck{}
	tokens, rdb, err := openTokenStore(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		checks["redis"] = redis.HealthCheck(rdb)
	}

	client, err := apiclient.New(apiclient.Options{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, tokens, logger.Component("apiclient"))
	if err != nil {
		return err
	}
	checks["backend"] = client.Ping

	notices := notify.NewFlash(notify.DefaultCapacity, logger.Component("notify"))
	session := service.NewSessionService(client, tokens, notices, logger.Component("session"), service.SessionOptions{
		RollbackPartialLogin: cfg.Session.RollbackPartialLogin,
	})
	client.OnAuthFailure(session.Expire)

	e := api.NewRouter(api.Deps{
		Session:   session,
		Products:  service.NewProductListLoader(client, logger.Component("products")),
		Inventory: service.NewInventoryService(client, session, notices, logger.Component("inventory")),
		Dashboard: service.NewDashboardService(client, logger.Component("dashboard")),
		Notices:   notices,
		Checks:    checks,
		Logger:    log,
	})

	// Protected pages answer "loading" until the boot check settles.
	go session.CheckAuth(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("backend", cfg.API.BaseURL).Str("tokens", cfg.Tokens.Backend).Msg("console listening")
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openTokenStore builds the configured token store. The Redis client is
// returned so the caller can close it and probe it for readiness.
func openTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, *goredis.Client, error) {
	switch cfg.Tokens.Backend {
	case config.TokenBackendRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewTokenStore(rdb, cfg.Tokens.Scope), rdb, nil
	case config.TokenBackendMemory:
		return tokenstore.NewMemoryStore(), nil, nil
	default:
		dir, err := cfg.TokenDir()
		if err != nil {
			return nil, nil, err
		}
		store, err := tokenstore.NewFileStore(dir, cfg.Tokens.Scope)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
}
