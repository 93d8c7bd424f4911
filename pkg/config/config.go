package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	Cart  CartConfig
	Redis RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAFE_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"CAFE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAFE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL string        `envconfig:"CAFE_API_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"CAFE_API_TIMEOUT" default:"10s"`
	// CookiePath overrides where the session cookie jar is persisted.
	// Empty means $XDG_CONFIG_HOME/cafectl/cookies.json.
	CookiePath string `envconfig:"CAFE_API_COOKIE_PATH"`
}

func (a APIConfig) validate() error {
	parsed, err := url.Parse(a.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api base url must be http or https, got %q", a.BaseURL)
	}
	return nil
}

type CartConfig struct {
	// StoragePath overrides the default cart file location. Empty means
	// $XDG_CONFIG_HOME/cafectl/cart.json.
	StoragePath string `envconfig:"CAFE_CART_STORAGE_PATH"`
	// Backend selects the cart persistence backend: "file" or "redis".
	Backend string `envconfig:"CAFE_CART_BACKEND" default:"file"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CAFE_REDIS_URL"`
	Address      string        `envconfig:"CAFE_REDIS_ADDR"`
	Password     string        `envconfig:"CAFE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAFE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAFE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAFE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAFE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAFE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAFE_REDIS_WRITE_TIMEOUT" default:"5s"`
}
