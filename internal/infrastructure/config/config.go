// Package config loads runtime settings from the environment. A .env file in
// the working directory, when present, is read first; real environment
// variables take precedence over it.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Storage  StorageConfig
	WhatsApp WhatsAppConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"JWT_TTL, default=30m"`
}

type PostgresConfig struct {
	URL      string        `env:"DATABASE_URL, required"`
	MaxConns int32         `env:"DB_MAX_CONNS, default=10"`
	Timeout  time.Duration `env:"DB_CONNECT_TIMEOUT, default=10s"`
}

// MongoConfig is optional. An empty URI disables the delivery audit log.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=livestock"`
}

// RedisConfig is optional. An empty address disables webhook deduplication.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB, default=0"`
	DedupTTL time.Duration `env:"WEBHOOK_DEDUP_TTL, default=24h"`
}

// StorageConfig selects S3 when a bucket is named, otherwise the local directory.
type StorageConfig struct {
	Dir                string `env:"STORAGE_DIR, default=./images"`
	S3Bucket           string `env:"S3_BUCKET"`
	S3Region           string `env:"S3_REGION, default=us-east-1"`
	S3AccessKeyID      string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey  string `env:"S3_SECRET_ACCESS_KEY"`
	S3CloudFrontDomain string `env:"S3_CLOUDFRONT_DOMAIN"`
}

type WhatsAppConfig struct {
	APIURL  string        `env:"WHATSAPP_API_URL, default=http://localhost:3000"`
	APIKey  string        `env:"WHATSAPP_API_KEY"`
	Timeout time.Duration `env:"WHATSAPP_TIMEOUT, default=10s"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (if any) and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes in production")
	}
	return nil
}
