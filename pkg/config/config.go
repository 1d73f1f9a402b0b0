package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Search   SearchConfig
	Checkout CheckoutConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POS_APP_ENV" required:"true"`
	Port         string `envconfig:"POS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"POS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points the terminal at the store backend API.
type BackendConfig struct {
	BaseURL string        `envconfig:"POS_BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"POS_BACKEND_TIMEOUT" default:"10s"`
}

func (b BackendConfig) validate() error {
	if !strings.HasPrefix(b.BaseURL, "http://") && !strings.HasPrefix(b.BaseURL, "https://") {
		return fmt.Errorf("backend base url must be http(s): %q", b.BaseURL)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	return nil
}

// SearchConfig tunes the catalog lookup behavior.
type SearchConfig struct {
	MinQueryLength int `envconfig:"POS_SEARCH_MIN_QUERY_LENGTH" default:"2"`
	PageSize       int `envconfig:"POS_SEARCH_PAGE_SIZE" default:"20"`
}

// CheckoutConfig tunes register-side checkout behavior.
type CheckoutConfig struct {
	CardEnabled  bool   `envconfig:"POS_CHECKOUT_CARD_ENABLED" default:"true"`
	CurrencyCode string `envconfig:"POS_CHECKOUT_CURRENCY_CODE" default:"KES"`
}

// JWTConfig validates the backend-issued access tokens presented by the UI.
type JWTConfig struct {
	Secret string `envconfig:"POS_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"POS_JWT_ISSUER" default:""`
}

// RedisConfig is optional; when the URL is empty the submit idempotency
// guard is disabled and only the in-process in-flight flag applies.
type RedisConfig struct {
	URL          string        `envconfig:"POS_REDIS_URL" default:""`
	PoolSize     int           `envconfig:"POS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POS_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"POS_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}
