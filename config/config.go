package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Feed       FeedConfig       `yaml:"feed"`
	Registry   RegistryConfig   `yaml:"registry"`
	Booking    BookingConfig    `yaml:"booking"`
	Notify     NotifyConfig     `yaml:"notify"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// FeedConfig holds the upstream availability feed configuration.
type FeedConfig struct {
	SnapshotURL             string        `yaml:"snapshot_url"`
	DeltaURL                string        `yaml:"delta_url"`
	SnapshotIntervalSeconds int           `yaml:"snapshot_interval_seconds"`
	DeltaIntervalSeconds    int           `yaml:"delta_interval_seconds"`
	SnapshotInterval        time.Duration `yaml:"-"` // Ignored by YAML parser
	DeltaInterval           time.Duration `yaml:"-"`
	HTTPProxy               string        `yaml:"http_proxy"`
}

// RegistryConfig holds the watch registry persistence configuration.
type RegistryConfig struct {
	Driver string `yaml:"driver"` // "sqlite" (default) or "postgres"
	DSN    string `yaml:"dsn"`
}

// BookingConfig holds the parameters for constructing ticket booking links.
type BookingConfig struct {
	BaseURL  string `yaml:"base_url"`
	ScreenID string `yaml:"screen_id"`
	Lottery  string `yaml:"lottery"`
	Timezone string `yaml:"timezone"`
}

// NotifyConfig holds the outbound notification channel configuration.
type NotifyConfig struct {
	WebhookURL string `yaml:"webhook_url"`
	// DefaultSubscriber identifies whose ticket IDs are used for booking
	// links in channel-level notifications.
	DefaultSubscriber string `yaml:"default_subscriber"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Feed.SnapshotIntervalSeconds <= 0 {
		cfg.Feed.SnapshotIntervalSeconds = 60
	}
	if cfg.Feed.DeltaIntervalSeconds <= 0 {
		cfg.Feed.DeltaIntervalSeconds = 1
	}
	cfg.Feed.SnapshotInterval = time.Duration(cfg.Feed.SnapshotIntervalSeconds) * time.Second
	cfg.Feed.DeltaInterval = time.Duration(cfg.Feed.DeltaIntervalSeconds) * time.Second

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 30
	}

	if cfg.Registry.Driver == "" {
		cfg.Registry.Driver = "sqlite"
	}
	if cfg.Registry.DSN == "" {
		cfg.Registry.DSN = "./watch_registry.db"
	}

	if cfg.Booking.BaseURL == "" {
		cfg.Booking.BaseURL = "https://ticket.expo2025.or.jp/event_time/"
	}
	if cfg.Booking.ScreenID == "" {
		cfg.Booking.ScreenID = "108"
	}
	if cfg.Booking.Lottery == "" {
		cfg.Booking.Lottery = "5"
	}
	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "Asia/Tokyo"
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
