package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BaseAndDev(t *testing.T) {
	cfg, err := Load(".", "dev")
	require.NoError(t, err)

	assert.Equal(t, "isaromas-storefront", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "isaromas-cart", cfg.Cart.StorageKey)
	assert.Equal(t, 30*time.Minute, cfg.Cart.IdleEviction)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, "5491125146197", cfg.Handoff.Phone)
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("STOREFRONT_STORAGE__DRIVER", "redis")
	t.Setenv("STOREFRONT_REDIS__ADDR", "cache:6380")
	t.Setenv("STOREFRONT_HANDOFF__PAYMENT_ALIAS", "OTRO.ALIAS")

	cfg, err := Load(".", "dev")
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "OTRO.ALIAS", cfg.Handoff.PaymentAlias)
}

func TestLoad_BaseAloneNeedsSecret(t *testing.T) {
	_, err := Load(".", "prod")
	assert.ErrorContains(t, err, "session.secret")
}

func TestLoad_MissingBase(t *testing.T) {
	_, err := Load(t.TempDir(), "dev")
	assert.ErrorContains(t, err, "load base")
}

func TestLoad_CustomDir(t *testing.T) {
	dir := t.TempDir()
	base := `
app:
  http_addr: ":9000"
storage:
  driver: mysql
mysql:
  dsn: "user:pass@tcp(db:3306)/shop?parseTime=true"
cart:
  storage_key: isaromas-cart
session:
  secret: 0123456789abcdef
  cookie_name: sid
handoff:
  phone: "5491100000000"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(base), 0o644))

	cfg, err := Load(dir, "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, StorageMySQL, cfg.Storage.Driver)
}

func validConfig() Config {
	var c Config
	c.App.HTTPAddr = ":8080"
	c.Storage.Driver = StorageMemory
	c.Cart.StorageKey = "isaromas-cart"
	c.Session.Secret = "0123456789abcdef"
	c.Session.CookieName = "sid"
	c.Handoff.Phone = "549"
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"no addr", func(c *Config) { c.App.HTTPAddr = "" }, "app.http_addr"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "etcd" }, "storage.driver"},
		{"redis without addr", func(c *Config) { c.Storage.Driver = StorageRedis }, "redis.addr"},
		{"mysql without dsn", func(c *Config) { c.Storage.Driver = StorageMySQL }, "mysql.dsn"},
		{"no storage key", func(c *Config) { c.Cart.StorageKey = "" }, "cart.storage_key"},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, "session.secret"},
		{"no cookie", func(c *Config) { c.Session.CookieName = "" }, "session.cookie_name"},
		{"no phone", func(c *Config) { c.Handoff.Phone = "" }, "handoff.phone"},
		{"rabbit without url", func(c *Config) { c.Rabbit.Enabled = true; c.Rabbit.Exchange = "x" }, "rabbitmq"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
