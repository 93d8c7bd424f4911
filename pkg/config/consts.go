package config

// EnvPrefix is the envconfig prefix; individual fields carry full names so
// this stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names used by tests and tooling.
const (
	EnvAppEnv          = "CAFE_APP_ENV"
	EnvLogLevel        = "CAFE_LOG_LEVEL"
	EnvAPIBaseURL      = "CAFE_API_BASE_URL"
	EnvAPITimeout      = "CAFE_API_TIMEOUT"
	EnvCartStoragePath = "CAFE_CART_STORAGE_PATH"
	EnvCartBackend     = "CAFE_CART_BACKEND"
	EnvRedisURL        = "CAFE_REDIS_URL"
)

// Cart persistence backends.
const (
	CartBackendFile  = "file"
	CartBackendRedis = "redis"
)
