package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/PayBridge/internal/pkg/env"
)

const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = "3000"
	DefaultForwardTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
)

// Config is built once at startup and handed to every component by pointer.
// Nothing mutates it after Load returns.
type Config struct {
	Host string `validate:"required"`
	Port string `validate:"required,numeric"`

	WebhookSecret string `validate:"required"`

	Firebase FirebaseConfig
	Cache    CacheConfig
	Metrics  MetricsConfig

	ShutdownTimeout time.Duration `validate:"gt=0"`
}

type FirebaseConfig struct {
	DatabaseURL    string        `validate:"required,url"`
	AuthToken      string        `validate:"omitempty"`
	ForwardTimeout time.Duration `validate:"gt=0"`
}

// CacheConfig is optional; an empty Host disables Redis-backed features.
type CacheConfig struct {
	Host     string
	Port     int `validate:"omitempty,min=1,max=65535"`
	Password string
	DB       int `validate:"min=0"`
}

func (c CacheConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MetricsConfig guards the operational endpoints with basic auth. They stay
// unmounted while no password is configured.
type MetricsConfig struct {
	User     string `validate:"required"`
	Password string
}

func (m MetricsConfig) Enabled() bool {
	return m.Password != ""
}

// Load reads the environment (see env.GetEnv) and validates the result.
func Load() (*Config, error) {
	forwardTimeout, err := durationEnv("FORWARD_TIMEOUT", DefaultForwardTimeout)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)
	if err != nil {
		return nil, err
	}
	cachePort, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_PORT: %w", err)
	}

	cfg := &Config{
		Host:          strings.TrimSpace(env.GetEnv("APP_HOST", DefaultHost)),
		Port:          strings.TrimSpace(env.GetEnv("APP_PORT", DefaultPort)),
		WebhookSecret: env.GetEnv("WEBHOOK_SECRET", ""),
		Firebase: FirebaseConfig{
			DatabaseURL:    strings.TrimRight(strings.TrimSpace(env.GetEnv("FIREBASE_DB_URL", "")), "/"),
			AuthToken:      strings.TrimSpace(env.GetEnv("FIREBASE_AUTH_TOKEN", "")),
			ForwardTimeout: forwardTimeout,
		},
		Cache: CacheConfig{
			Host:     strings.TrimSpace(env.GetEnv("CACHE_HOST", "")),
			Port:     cachePort,
			Password: env.GetEnv("CACHE_PASSWORD", ""),
		},
		Metrics: MetricsConfig{
			User:     env.GetEnv("METRICS_USER", "admin"),
			Password: env.GetEnv("METRICS_PASSWORD", ""),
		},
		ShutdownTimeout: shutdownTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(env.GetEnv(key, ""))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
