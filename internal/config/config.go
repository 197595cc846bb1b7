package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Database drivers accepted in DATABASE_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Storage backends accepted in STORAGE_BACKEND
const (
	StorageMinio  = "minio"
	StorageMemory = "memory"
)

// Config is the process configuration read from the environment
type Config struct {
	Env      string
	HTTP     HTTPConfig
	Database DatabaseConfig
	Storage  StorageConfig
	OpenAI   OpenAIConfig
	Auth     AuthConfig

	// PlansFile optionally overrides the built-in plan table
	PlansFile string

	// MaxUploadMemory is the multipart size kept in memory before spilling to disk
	MaxUploadMemory int64
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Driver string
	URL    string
}

type StorageConfig struct {
	Backend       string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type AuthConfig struct {
	JWTSecret string
}

// IsDevelopment reports whether APP_ENV selects development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr is the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

// Load reads the configuration from the environment and validates it.
// Call LoadEnv first to pick up .env files.
func Load() (*Config, error) {
	readTimeout, err := getEnvDuration("HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	// transcription requests wait on the engine
	writeTimeout, err := getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	maxMemory, err := getEnvInt64("MAX_UPLOAD_MEMORY", 32<<20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env: getEnvOrDefault("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getEnvOrDefault("HTTP_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("HTTP_PORT", "8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		Database: DatabaseConfig{
			Driver: getEnvOrDefault("DATABASE_DRIVER", DriverSQLite),
			URL:    getEnvOrDefault("DATABASE_URL", "./data/audioscribe.db"),
		},
		Storage: StorageConfig{
			Backend:       getEnvOrDefault("STORAGE_BACKEND", StorageMinio),
			Endpoint:      getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnvOrDefault("MINIO_BUCKET", "audio-files"),
			UseSSL:        getEnvBool("MINIO_USE_SSL"),
			PublicBaseURL: getEnvOrDefault("STORAGE_PUBLIC_BASE_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnvOrDefault("OPENAI_API_KEY", ""),
			BaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
			Model:   getEnvOrDefault("OPENAI_MODEL", "whisper-1"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrDefault("AUTH_JWT_SECRET", ""),
		},
		PlansFile:       getEnvOrDefault("PLANS_FILE", ""),
		MaxUploadMemory: maxMemory,
	}

	if cfg.Database.Driver == DriverSQLite {
		cfg.Database.URL = sqlitePath(cfg.Database.URL)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sqlitePath anchors a relative SQLite path at the project root when running
// from a source checkout, so commands started in subdirectories share one file.
func sqlitePath(path string) string {
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	root, err := GetProjectRoot()
	if err != nil {
		return path
	}
	return filepath.Join(root, path)
}

// Validate checks the values that every command depends on
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q: must be %s or %s", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.Storage.Backend {
	case StorageMinio, StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND %q: must be %s or %s", c.Storage.Backend, StorageMinio, StorageMemory)
	}

	if err := ValidatePort(c.HTTP.Port, "HTTP"); err != nil {
		return err
	}
	if err := ValidateTimeout(c.HTTP.ReadTimeout, "HTTP read"); err != nil {
		return err
	}
	if err := ValidateTimeout(c.HTTP.WriteTimeout, "HTTP write"); err != nil {
		return err
	}
	if c.MaxUploadMemory <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MEMORY must be positive")
	}

	if c.Storage.PublicBaseURL != "" {
		if err := ValidateURL(c.Storage.PublicBaseURL, "storage public base"); err != nil {
			return err
		}
	}
	if c.OpenAI.BaseURL != "" {
		if err := ValidateURL(c.OpenAI.BaseURL, "OpenAI base"); err != nil {
			return err
		}
	}
	if c.OpenAI.APIKey != "" {
		if err := ValidateAPIKey(c.OpenAI.APIKey, "OpenAI"); err != nil {
			return err
		}
	}
	return nil
}

// ValidateServer checks the secrets the HTTP API cannot start without
func (c *Config) ValidateServer() error {
	if err := ValidateAPIKey(c.OpenAI.APIKey, "OpenAI"); err != nil {
		return err
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 32 characters")
	}
	return nil
}

// DriverName maps DATABASE_DRIVER to the database/sql driver name
func (d DatabaseConfig) DriverName() string {
	if d.Driver == DriverSQLite {
		return "sqlite3"
	}
	return d.Driver
}
