package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Routing  RoutingConfig
	Log      LogConfig
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds the optional Redis distance-cache settings.
// An empty Addr disables the Redis cache in favor of the SQL one.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RoutingConfig holds routing-engine settings. OriginLat/OriginLng are
// the process-wide default route origin used when a request carries no
// override.
type RoutingConfig struct {
	MapboxToken     string
	OriginLat       float64
	OriginLng       float64
	SyncConcurrency int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load reads configuration from environment variables (with an
// optional config file for local runs) and applies defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars alone must be enough.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config: read config file: %w", err)
		}
	}

	cfg := &Config{
		App: AppConfig{
			Port:         v.GetString("port"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database_url"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Routing: RoutingConfig{
			MapboxToken:     v.GetString("mapbox_token"),
			OriginLat:       v.GetFloat64("routing.origin_lat"),
			OriginLng:       v.GetFloat64("routing.origin_lng"),
			SyncConcurrency: v.GetInt("routing.sync_concurrency"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("http.read_timeout", 10*time.Second)
	// Write timeout is tuned for cold-cache route optimization
	// (external API latency).
	v.SetDefault("http.write_timeout", 120*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("routing.sync_concurrency", 4)
	// NaN marks "not configured" so the origin resolver can fail fast
	// instead of silently routing from (0, 0).
	v.SetDefault("routing.origin_lat", math.NaN())
	v.SetDefault("routing.origin_lng", math.NaN())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("load config: DATABASE_URL is required")
	}
	if strings.TrimSpace(c.Routing.MapboxToken) == "" {
		return fmt.Errorf("load config: MAPBOX_TOKEN is required")
	}
	if c.Routing.SyncConcurrency < 1 {
		return fmt.Errorf("load config: routing.sync_concurrency must be at least 1")
	}
	return nil
}
