package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "VERDICT"

var validate = validator.New()

// Config holds the application configuration
type Config struct {
	Server     ServerConfig
	Classifier ClassifierConfig
	History    HistoryConfig
	Database   DatabaseConfig
	Log        LogConfig
}

// Variables are named VERDICT_<SECTION>_<FIELD>, e.g. VERDICT_SERVER_PORT.
// Fields carry no envconfig tags: a tag would also match the bare name
// ($PORT, $USER).

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `default:"0.0.0.0"`
	Port int    `default:"8080" validate:"min=1,max=65535"`
	Mode string `default:"debug" validate:"oneof=debug release test"`
}

// ClassifierConfig holds prediction API settings
type ClassifierConfig struct {
	URL        string        `default:"https://fake-news-api.onrender.com/predict" validate:"required,url"`
	Timeout    time.Duration `default:"30s" validate:"gt=0"`
	StrictKeys bool          `default:"false" split_words:"true"`
}

// HistoryConfig controls the optional verdict audit log
type HistoryConfig struct {
	Enabled bool   `default:"false"`
	Driver  string `default:"sqlite" validate:"oneof=postgres sqlite"`
	File    string `default:"verdicts.db"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `default:"localhost"`
	Port     int    `default:"5432" validate:"min=1,max=65535"`
	User     string `default:"verdict"`
	Password string `default:"verdict"`
	DBName   string `default:"verdict"`
	SSLMode  string `default:"disable"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `default:"info"`
	Format string `default:"json" validate:"oneof=json console"`
}

// Load reads an optional .env file, then the VERDICT_* environment, and
// validates the result.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Addr returns the host:port the HTTP server listens on
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN returns the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
