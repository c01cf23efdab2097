package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageMySQL  = "mysql"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		Env      string `koanf:"env"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		RequestTimeout  time.Duration `koanf:"request_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Storage struct {
		Driver string `koanf:"driver"` // memory | redis | mysql
	} `koanf:"storage"`

	MySQL struct {
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	} `koanf:"mysql"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Cart struct {
		StorageKey    string        `koanf:"storage_key"`
		TTL           time.Duration `koanf:"ttl"`
		IdleEviction  time.Duration `koanf:"idle_eviction"`
		SweepInterval time.Duration `koanf:"sweep_interval"`
	} `koanf:"cart"`

	Session struct {
		Secret     string        `koanf:"secret"`
		Issuer     string        `koanf:"issuer"`
		Audience   string        `koanf:"audience"`
		CookieName string        `koanf:"cookie_name"`
		TTL        time.Duration `koanf:"ttl"`
		Secure     bool          `koanf:"secure"`
	} `koanf:"session"`

	Catalog struct {
		Path string `koanf:"path"` // empty => bundled catalog
	} `koanf:"catalog"`

	Handoff struct {
		Brand        string `koanf:"brand"`
		Phone        string `koanf:"phone"`
		PaymentAlias string `koanf:"payment_alias"`
		BaseURL      string `koanf:"base_url"`
	} `koanf:"handoff"`

	Rabbit struct {
		Enabled    bool          `koanf:"enabled"`
		URL        string        `koanf:"url"`
		Exchange   string        `koanf:"exchange"`
		RoutingKey string        `koanf:"routing_key"`
		Queue      string        `koanf:"queue"`
		Timeout    time.Duration `koanf:"timeout"`
	} `koanf:"rabbitmq"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix STOREFRONT_, nested with __)
	// e.g. STOREFRONT_REDIS__ADDR, STOREFRONT_SESSION__SECRET
	if err := k.Load(env.Provider("STOREFRONT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STOREFRONT_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if cfg.App.Env == "" {
		cfg.App.Env = envName
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr required for storage.driver=redis")
		}
	case StorageMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql.dsn required for storage.driver=mysql")
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory|redis|mysql, got %q", c.Storage.Driver)
	}
	if c.Cart.StorageKey == "" {
		return fmt.Errorf("cart.storage_key required")
	}
	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("session.secret must be at least 16 bytes")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session.cookie_name required")
	}
	if c.Handoff.Phone == "" {
		return fmt.Errorf("handoff.phone required")
	}
	if c.Rabbit.Enabled && (c.Rabbit.URL == "" || c.Rabbit.Exchange == "") {
		return fmt.Errorf("rabbitmq.url and rabbitmq.exchange required when rabbitmq.enabled")
	}
	return nil
}
