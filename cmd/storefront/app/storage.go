package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/configs"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/cache"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/adapter/repo"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
)

const pingTimeout = 10 * time.Second

// openStorage returns the cart snapshot store selected by storage.driver.
func openStorage(ctx context.Context, cfg configs.Config) (cart.Storage, func(), error) {
	switch cfg.Storage.Driver {
	case configs.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := rdb.Ping(pctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return cache.NewRedisCartStorage(rdb, cfg.Cart.TTL), func() { _ = rdb.Close() }, nil

	case configs.StorageMySQL:
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql open: %w", err)
		}
		if cfg.MySQL.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
		}
		if cfg.MySQL.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		}
		if cfg.MySQL.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		}

		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := db.PingContext(pctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("mysql ping: %w", err)
		}
		r := repo.NewMySQLCartRepo(db)
		if err := r.EnsureSchema(pctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return r, func() { _ = db.Close() }, nil

	default:
		return cart.NewMemoryStorage(), func() {}, nil
	}
}
