package config

// EnvPrefix is empty because every field carries its fully qualified
// variable name in the envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

const DefaultSQLiteDSN = "file:electroquick.db?_busy_timeout=5000"

const (
	EnvAppEnv                = "ELECTROQUICK_APP_ENV"
	EnvPort                  = "ELECTROQUICK_APP_PORT"
	EnvLogLevel              = "ELECTROQUICK_LOG_LEVEL"
	EnvStorageBackend        = "ELECTROQUICK_STORAGE_BACKEND"
	EnvStorageWriteTimeout   = "ELECTROQUICK_STORAGE_WRITE_TIMEOUT"
	EnvDBDSN                 = "ELECTROQUICK_DB_DSN"
	EnvDBDriver              = "ELECTROQUICK_DB_DRIVER"
	EnvRedisURL              = "ELECTROQUICK_REDIS_URL"
	EnvRedisAddr             = "ELECTROQUICK_REDIS_ADDR"
	EnvCartStorageKey        = "ELECTROQUICK_CART_STORAGE_KEY"
	EnvCatalogPath           = "ELECTROQUICK_CATALOG_PATH"
	EnvDeliveryCharge        = "ELECTROQUICK_DELIVERY_CHARGE"
	EnvFreeDeliveryThreshold = "ELECTROQUICK_FREE_DELIVERY_THRESHOLD"
	EnvTaxRate               = "ELECTROQUICK_TAX_RATE"
)
