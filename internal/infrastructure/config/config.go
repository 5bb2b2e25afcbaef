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
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth    AuthConfig
	Entries EntriesConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET, required"`
	TokenTTL         time.Duration `env:"TOKEN_TTL,          default=0s"`
	BcryptCost       int           `env:"BCRYPT_COST,        default=8"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginLockWindow  time.Duration `env:"LOGIN_LOCK_WINDOW,  default=15m"`
}

type EntriesConfig struct {
	OptimisticLock bool `env:"ENTRY_OPTIMISTIC_LOCK, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=brandbook"`
}

// RedisConfig is optional; an empty Addr disables the login throttle.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type StorageConfig struct {
	Bucket          string `env:"STORAGE_BUCKET, required"`
	ProjectID       string `env:"STORAGE_PROJECT_ID"`
	CredentialsFile string `env:"STORAGE_CREDENTIALS_FILE"`
	Endpoint        string `env:"STORAGE_ENDPOINT,        default=https://storage.googleapis.com"`
	Region          string `env:"STORAGE_REGION,          default=auto"`
	AccessKey       string `env:"STORAGE_ACCESS_KEY"`
	SecretKey       string `env:"STORAGE_SECRET_KEY"`
	PublicBaseURL   string `env:"STORAGE_PUBLIC_BASE_URL, default=https://storage.googleapis.com"`
	PathStyle       bool   `env:"STORAGE_PATH_STYLE,      default=false"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// LoadDotEnv populates the process environment from .env style files.
// Variables that are already set win, and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return nil, fmt.Errorf("config: BCRYPT_COST must be between 4 and 31, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.TokenTTL < 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must not be negative")
	}
	return &cfg, nil
}
