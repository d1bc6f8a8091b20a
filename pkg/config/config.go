package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App        AppConfig
	Strapi     StrapiConfig
	Medusa     MedusaConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Contact    ContactConfig
	Revalidate RevalidateConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Strapi.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Medusa.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string   `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StrapiConfig points at the content service (copy, categories, news, pages).
type StrapiConfig struct {
	BaseURL  string        `envconfig:"STOREFRONT_STRAPI_URL" required:"true"`
	APIToken string        `envconfig:"STOREFRONT_STRAPI_API_TOKEN"`
	Timeout  time.Duration `envconfig:"STOREFRONT_STRAPI_TIMEOUT" default:"10s"`
}

func (s StrapiConfig) validate() error {
	if strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("STOREFRONT_STRAPI_URL is required")
	}
	return nil
}

// MedusaConfig points at the commerce service (pricing, inventory, carts, orders).
type MedusaConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_MEDUSA_URL" required:"true"`
	Timeout time.Duration `envconfig:"STOREFRONT_MEDUSA_TIMEOUT" default:"10s"`
}

func (m MedusaConfig) validate() error {
	if strings.TrimSpace(m.BaseURL) == "" {
		return fmt.Errorf("STOREFRONT_MEDUSA_URL is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CacheConfig struct {
	PageTTL    time.Duration `envconfig:"STOREFRONT_CACHE_PAGE_TTL" default:"10m"`
	SessionTTL time.Duration `envconfig:"STOREFRONT_CACHE_SESSION_TTL" default:"720h"`
}

type ContactConfig struct {
	OutboxPath         string        `envconfig:"STOREFRONT_CONTACT_OUTBOX_PATH" default:"contact-outbox.db"`
	FlushInterval      time.Duration `envconfig:"STOREFRONT_CONTACT_FLUSH_INTERVAL" default:"1m"`
	FlushBatchSize     int           `envconfig:"STOREFRONT_CONTACT_FLUSH_BATCH" default:"20"`
	MaxForwardAttempts int           `envconfig:"STOREFRONT_CONTACT_MAX_ATTEMPTS" default:"10"`
	MessageMaxRunes    int           `envconfig:"STOREFRONT_CONTACT_MESSAGE_MAX_RUNES" default:"2000"`
}

type RevalidateConfig struct {
	Secret string `envconfig:"STOREFRONT_REVALIDATE_SECRET"`
}
