package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/configs"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/http"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/http/middleware"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/observ"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/catalog"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/handoff"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/session"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/usecase"
)

type App struct {
	Router *gin.Engine
	Carts  *session.Registry
}

func InitWithConfig(ctx context.Context, cfg configs.Config) (*App, func(), error) {
	// init logger
	logger := logging.Init(logging.Options{
		Component: cfg.App.Name,
		FilePath:  cfg.App.LogFile,
		Level:     cfg.App.LogLevel,
	})
	logger.Info("storefront: starting up", "env", cfg.App.Env)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	// catalog
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("catalog loaded", "products", cat.Len())

	// cart storage
	store, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// optional cart change events
	publish, closeEvents, err := openCartEvents(cfg)
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	// sessions + metrics
	metrics := observ.NewCartMetrics(prometheus.DefaultRegisterer)
	subs := []cart.Subscriber{metrics.Observe}
	if publish != nil {
		subs = append(subs, publish)
	}
	carts := session.NewRegistry(store, cfg.Cart.StorageKey, session.Hooks{
		Loaded:   metrics.Loaded,
		Sessions: metrics.SetActiveSessions,
	}, subs...)
	tokens := session.NewTokens(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.Audience, cfg.Session.TTL)

	// use cases + handlers + router
	checkout := usecase.NewCheckout(handoff.Settings{
		Brand:        cfg.Handoff.Brand,
		Phone:        cfg.Handoff.Phone,
		PaymentAlias: cfg.Handoff.PaymentAlias,
		BaseURL:      cfg.Handoff.BaseURL,
	})
	router := http.NewRouter(http.Handlers{
		Catalog:  http.NewCatalogHandler(cat),
		Cart:     http.NewCartHandler(carts, cat, cfg.HTTP.RequestTimeout),
		Checkout: http.NewCheckoutHandler(checkout, carts, cfg.HTTP.RequestTimeout),
	},
		middleware.NewSession(tokens, middleware.SessionCookie{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.Secure,
		}),
		logging.New("http"),
	)

	cleanup := func() {
		closeEvents()
		closeStore()
	}

	return &App{Router: router, Carts: carts}, cleanup, nil
}

func loadCatalog(cfg configs.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("bundled catalog: %w", err)
		}
		return c, nil
	}
	c, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", cfg.Catalog.Path, err)
	}
	return c, nil
}
