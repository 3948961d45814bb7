package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Version is reported on the welcome banner and /api/docs.
const Version = "1.1.0"

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds session token lifetime; zero issues tokens without an
	// expiry claim (revocation still applies through the session store).
	TokenTTL time.Duration `env:"TOKEN_TTL, default=0"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Factory FactoryConfig
	LogShip LogShipConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pizza_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// FactoryConfig points at the external order-fulfillment factory.
type FactoryConfig struct {
	URL    string `env:"FACTORY_URL,     default=https://pizza-factory.cs329.click"`
	APIKey string `env:"FACTORY_API_KEY"`
}

// LogShipConfig configures optional batched log delivery to a Loki-style
// endpoint. Disabled when URL is empty.
type LogShipConfig struct {
	URL    string `env:"LOGSHIP_URL"`
	APIKey string `env:"LOGSHIP_API_KEY"`
	Source string `env:"LOGSHIP_SOURCE, default=pizza-service-dev"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
