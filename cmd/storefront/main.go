package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/cmd/storefront/app"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/configs"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.InitWithConfig(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	go a.Carts.RunSweeper(ctx, cfg.Cart.SweepInterval, cfg.Cart.IdleEviction)

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      a.Router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	l := logging.New("main")
	errCh := make(chan error, 1)
	go func() {
		l.Info("storefront listening", "env", env, "addr", cfg.App.HTTPAddr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error("http server", "err", err)
		}
	case <-ctx.Done():
		l.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("graceful shutdown", "err", err)
	}
}
