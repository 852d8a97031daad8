package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	DB       DBConfig
	Redis    RedisConfig
	Cart     CartConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"ELECTROQUICK_APP_ENV" default:"dev"`
	Port            string        `envconfig:"ELECTROQUICK_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"ELECTROQUICK_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"ELECTROQUICK_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"ELECTROQUICK_SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigins  []string      `envconfig:"ELECTROQUICK_ALLOWED_ORIGINS" default:"http://localhost:8081,http://localhost:19006"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the persistence backend holding the serialized cart.
type StorageConfig struct {
	Backend      string        `envconfig:"ELECTROQUICK_STORAGE_BACKEND" default:"sqlite"`
	ReadTimeout  time.Duration `envconfig:"ELECTROQUICK_STORAGE_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ELECTROQUICK_STORAGE_WRITE_TIMEOUT" default:"5s"`
}

// NormalizedBackend returns the lower-cased backend name, sqlite when blank.
func (s StorageConfig) NormalizedBackend() string {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	if backend == "" {
		return StorageSQLite
	}
	return backend
}

type DBConfig struct {
	DSN         string `envconfig:"ELECTROQUICK_DB_DSN"`
	Driver      string `envconfig:"ELECTROQUICK_DB_DRIVER"`
	AutoMigrate bool   `envconfig:"ELECTROQUICK_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"ELECTROQUICK_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"ELECTROQUICK_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"ELECTROQUICK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ELECTROQUICK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ELECTROQUICK_REDIS_URL"`
	Address      string        `envconfig:"ELECTROQUICK_REDIS_ADDR"`
	Password     string        `envconfig:"ELECTROQUICK_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELECTROQUICK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ELECTROQUICK_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"ELECTROQUICK_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"ELECTROQUICK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELECTROQUICK_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"ELECTROQUICK_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type CartConfig struct {
	StorageKey string `envconfig:"ELECTROQUICK_CART_STORAGE_KEY" default:"electro_quick_cart"`
}

type CatalogConfig struct {
	// Path overrides the embedded sample catalog when set.
	Path string `envconfig:"ELECTROQUICK_CATALOG_PATH"`
}

type CheckoutConfig struct {
	Currency              string  `envconfig:"ELECTROQUICK_CURRENCY" default:"INR"`
	CurrencySymbol        string  `envconfig:"ELECTROQUICK_CURRENCY_SYMBOL" default:"₹"`
	DeliveryCharge        float64 `envconfig:"ELECTROQUICK_DELIVERY_CHARGE" default:"50"`
	FreeDeliveryThreshold float64 `envconfig:"ELECTROQUICK_FREE_DELIVERY_THRESHOLD" default:"500"`
	TaxRate               float64 `envconfig:"ELECTROQUICK_TAX_RATE" default:"18"`
}

func (c *Config) validate() error {
	switch c.Storage.NormalizedBackend() {
	case StorageMemory:
	case StorageSQLite:
		if c.DB.Driver == "" {
			c.DB.Driver = StorageSQLite
		}
		if c.DB.DSN == "" {
			c.DB.DSN = DefaultSQLiteDSN
		}
	case StoragePostgres:
		if c.DB.Driver == "" {
			c.DB.Driver = StoragePostgres
		}
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the postgres storage backend", EnvDBDSN)
		}
	case StorageRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis storage backend", EnvRedisURL, EnvRedisAddr)
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}

	if strings.TrimSpace(c.Cart.StorageKey) == "" {
		return fmt.Errorf("%s must not be blank", EnvCartStorageKey)
	}
	if c.Checkout.DeliveryCharge < 0 || c.Checkout.FreeDeliveryThreshold < 0 || c.Checkout.TaxRate < 0 {
		return fmt.Errorf("checkout amounts must be non-negative")
	}
	return nil
}
