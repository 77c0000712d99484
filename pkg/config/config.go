package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "AGX"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	Contact  ContactConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AGX_APP_ENV" default:"development"`
	Port         string `envconfig:"AGX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AGX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AGX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the frontend at the marketplace REST API.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"AGX_UPSTREAM_BASE_URL" default:"http://localhost:5000/api"`
	Timeout time.Duration `envconfig:"AGX_UPSTREAM_TIMEOUT" default:"10s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid upstream base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("upstream base url must be http(s), got %q", u.BaseURL)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"AGX_REDIS_URL"`
	Address      string        `envconfig:"AGX_REDIS_ADDR"`
	Password     string        `envconfig:"AGX_REDIS_PASSWORD"`
	DB           int           `envconfig:"AGX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AGX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AGX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AGX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AGX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AGX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig controls the signed session cookie and the server-side
// credential store backing it.
type SessionConfig struct {
	Secret       string        `envconfig:"AGX_SESSION_SECRET" required:"true"`
	Issuer       string        `envconfig:"AGX_SESSION_ISSUER" default:"agroexport-web"`
	CookieName   string        `envconfig:"AGX_SESSION_COOKIE_NAME" default:"agx_sid"`
	CookieSecure bool          `envconfig:"AGX_SESSION_COOKIE_SECURE" default:"false"`
	TTL          time.Duration `envconfig:"AGX_SESSION_TTL" default:"24h"`
	SubmitGuard  time.Duration `envconfig:"AGX_SESSION_SUBMIT_GUARD_TTL" default:"15m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"AGX_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// ContactConfig carries the export desk contact used for the WhatsApp
// order-confirmation assist.
type ContactConfig struct {
	WhatsAppNumber string `envconfig:"AGX_WHATSAPP_NUMBER" default:""`
}
