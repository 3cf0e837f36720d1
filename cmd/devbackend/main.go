// Command devbackend runs the in-memory inventory backend for local
// development of the console.
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

	"github.com/stockmanager/admin-console/internal/devbackend"
	"github.com/stockmanager/admin-console/internal/infrastructure/config"
	"github.com/stockmanager/admin-console/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "devbackend:", err)
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
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production(), Service: "devbackend"})

	store := devbackend.NewStore(0)
	if cfg.Dev.Seed {
		if err := store.Seed(); err != nil {
			return err
		}
		log.Info().Msg("seeded demo users admin, manager and reader")
	}
	issuer := devbackend.NewTokenIssuer(cfg.Dev.JWTSecret, cfg.Dev.AccessTTL, cfg.Dev.RefreshTTL)
	e := devbackend.NewServer(store, issuer, logger.Component("http"))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Dev.Addr).Str("base_path", devbackend.BasePath).Msg("devbackend listening")
		if err := e.Start(cfg.Dev.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
