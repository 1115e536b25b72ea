package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	DatabaseURL    string
	RedisURL       string
	DeployBaseURL  string
	InstanceTTL    time.Duration
	SchemaCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NEWTON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Activity API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("deploy.base_url", "https://mrnewton.example.com")
	v.SetDefault("instance.ttl", "168h")
	v.SetDefault("schema.cache_ttl", "5m")

	ttl, err := time.ParseDuration(v.GetString("instance.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid instance ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("schema.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid schema cache ttl: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		DeployBaseURL:  strings.TrimRight(v.GetString("deploy.base_url"), "/"),
		InstanceTTL:    ttl,
		SchemaCacheTTL: cacheTTL,
	}

	if cfg.InstanceTTL <= 0 {
		cfg.InstanceTTL = 168 * time.Hour
	}

	return cfg, nil
}
