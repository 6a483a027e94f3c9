package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Alwanly/service-feed-poller/pkg/poll"
	"github.com/Alwanly/service-feed-poller/pkg/retry"
	"github.com/Alwanly/service-feed-poller/pkg/validator"
)

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" yaml:"host"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379" yaml:"port" validate:"gte=0,lte=65535"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB" envDefault:"0" yaml:"db" validate:"gte=0"`
	// UpdatesChannel receives a copy of every raw update when Redis is enabled
	UpdatesChannel string `env:"REDIS_UPDATES_CHANNEL" envDefault:"feed:updates" yaml:"updates_channel"`
}

// Enabled reports whether a Redis host was configured
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type PollerConfig struct {
	BotToken       string        `env:"BOT_TOKEN" yaml:"bot_token" validate:"required"`
	APIURL         string        `env:"BOT_API_URL" envDefault:"https://api.telegram.org" yaml:"api_url" validate:"required,url"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s" yaml:"request_timeout" validate:"gt=0"`

	Offset         int64    `env:"POLL_OFFSET" envDefault:"0" yaml:"offset" validate:"gte=0"`
	Limit          int      `env:"POLL_LIMIT" envDefault:"100" yaml:"limit" validate:"gte=1,lte=100"`
	Timeout        int      `env:"POLL_TIMEOUT" envDefault:"30" yaml:"timeout" validate:"gte=0"`
	IntervalMS     int      `env:"POLL_INTERVAL_MS" envDefault:"1000" yaml:"interval_ms" validate:"gte=0"`
	AllowedUpdates []string `env:"POLL_ALLOWED_UPDATES" envSeparator:"," yaml:"allowed_updates"`

	MaxInFlight   int64         `env:"DISPATCH_MAX_IN_FLIGHT" envDefault:"0" yaml:"max_in_flight" validate:"gte=0"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"5s" yaml:"shutdown_grace" validate:"gte=0"`

	// Boot probe retry configuration
	BootMaxRetries        int           `env:"BOOT_MAX_RETRIES" envDefault:"5" yaml:"boot_max_retries" validate:"gte=-1"`
	BootInitialBackoff    time.Duration `env:"BOOT_INITIAL_BACKOFF" envDefault:"1s" yaml:"boot_initial_backoff"`
	BootMaxBackoff        time.Duration `env:"BOOT_MAX_BACKOFF" envDefault:"30s" yaml:"boot_max_backoff"`
	BootBackoffMultiplier float64       `env:"BOOT_BACKOFF_MULTIPLIER" envDefault:"2.0" yaml:"boot_backoff_multiplier" validate:"gte=1"`

	Redis RedisConfig `yaml:"redis"`
}

// BootRetry returns the backoff used for the startup identity probe
func (c *PollerConfig) BootRetry() retry.Config {
	return retry.Config{
		MaxRetries:     c.BootMaxRetries,
		InitialBackoff: c.BootInitialBackoff,
		MaxBackoff:     c.BootMaxBackoff,
		Multiplier:     c.BootBackoffMultiplier,
		Jitter:         true,
	}
}

// Poll returns the cursor state the poller starts from
func (c *PollerConfig) Poll() poll.Config {
	return poll.Config{
		Offset:         c.Offset,
		Limit:          c.Limit,
		Timeout:        c.Timeout,
		Interval:       c.IntervalMS,
		AllowedUpdates: c.AllowedUpdates,
	}.Normalize()
}

type FakeAPIConfig struct {
	ServerAddr   string `env:"FAKEAPI_ADDR" envDefault:":8081" yaml:"server_addr" validate:"required"`
	BotToken     string `env:"BOT_TOKEN" yaml:"bot_token" validate:"required"`
	BotUsername  string `env:"FAKEAPI_BOT_USERNAME" envDefault:"echo_bot" yaml:"bot_username"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"file::memory:?cache=shared" yaml:"database_path"`
	// MaxHold caps how long getUpdates may hold a request regardless of its timeout
	MaxHold time.Duration `env:"FAKEAPI_MAX_HOLD" envDefault:"50s" yaml:"max_hold" validate:"gt=0"`
}

// LoadPollerConfig reads the poller config from the environment, overlays
// CONFIG_FILE when set, and validates the result
func LoadPollerConfig() (*PollerConfig, error) {
	cfg := &PollerConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFakeAPIConfig reads the fake Bot API server config the same way
func LoadFakeAPIConfig() (*FakeAPIConfig, error) {
	cfg := &FakeAPIConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := validator.ValidateStruct(target); err != nil {
		return fmt.Errorf("invalid configuration: %s", validator.Describe(err))
	}
	return nil
}
