package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// EnvPrefix namespaces every variable read by Load
const EnvPrefix = "TRADEBOARD"

// Data source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	Data     DataConfig     `envconfig:"DATA"`
	Security SecurityConfig `envconfig:"SECURITY"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Mode            string        `envconfig:"GIN_MODE" default:"debug"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DataConfig selects where the shipment dataset is loaded from
type DataConfig struct {
	Source string `envconfig:"SOURCE" default:"file"`
	File   string `envconfig:"FILE" default:"data/shipments.json"`
	DSN    string `envconfig:"DSN"`
	Table  string `envconfig:"TABLE" default:"shipments"`
	Eager  bool   `envconfig:"EAGER" default:"false"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	AuthEnabled    bool     `envconfig:"AUTH_ENABLED" default:"false"`
	JWTSecret      string   `envconfig:"JWT_SECRET"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

// Load reads an optional .env file, then the environment
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, eris.Wrapf(err, "failed to load env file %s", envFile)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, eris.Wrap(err, "failed to load config from env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "config validation failed")
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	c.Data.Source = strings.ToLower(strings.TrimSpace(c.Data.Source))
	switch c.Data.Source {
	case SourceFile:
		if c.Data.File == "" {
			return eris.New("data file path is required for the file source")
		}
	case SourcePostgres:
		if c.Data.DSN == "" {
			return eris.New("DSN is required for the postgres source")
		}
		if c.Data.Table == "" {
			return eris.New("table is required for the postgres source")
		}
	default:
		return eris.Errorf("unknown data source %q, expected %q or %q", c.Data.Source, SourceFile, SourcePostgres)
	}

	if c.Security.AuthEnabled && c.Security.JWTSecret == "" {
		return eris.New("JWT secret is required when auth is enabled")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return eris.Wrapf(err, "invalid log level %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return eris.Errorf("invalid log format %q, expected json or console", c.Logging.Format)
	}
	return nil
}
