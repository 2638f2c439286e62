package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissing indicates a required configuration value is absent.
var ErrMissing = errors.New("config: missing required value")

// Default values applied when the environment does not override them.
const (
	// DefaultCredentialsDatabase is the logical database holding admin credentials.
	DefaultCredentialsDatabase = "admin_credentials"
	// DefaultServerAddr is the listen address for the HTTP server.
	DefaultServerAddr = ":8080"
	// DefaultSessionTTL is the session token lifetime.
	DefaultSessionTTL = 24 * time.Hour
)

// Config holds the full runtime configuration.
type Config struct {
	// BaseDSN is the database server DSN without a database name.
	BaseDSN string `yaml:"database_base_dsn"`
	// DSNOptions is an optional suffix appended to every derived DSN.
	DSNOptions string `yaml:"database_options"`
	// CredentialsDatabase is the logical database holding admin credentials.
	CredentialsDatabase string `yaml:"credentials_database"`

	// JWTSecret signs session tokens.
	JWTSecret string `yaml:"jwt_secret"`
	// SessionTTL bounds session token validity.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// SuperAdminUsername and SuperAdminPassword are the env-tier credentials.
	SuperAdminUsername string `yaml:"admin_username"`
	SuperAdminPassword string `yaml:"admin_password"`

	// AuthKey is server-side key material mixed into every password hash.
	AuthKey string `yaml:"auth_key"`

	// ServerAddr is the HTTP listen address.
	ServerAddr string `yaml:"server_addr"`
	// Env is the deployment environment ("production" hardens cookies).
	Env string `yaml:"env"`

	// LogLevel selects the logrus level by name.
	LogLevel string `yaml:"log_level"`
	// LogFile enables rotating file output when non-empty.
	LogFile string `yaml:"log_file"`
}

// Production reports whether the config targets a production deployment.
func (c *Config) Production() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// Load assembles configuration from an optional YAML file and the
// environment, with environment values taking precedence. A .env file in
// the working directory is folded into the environment when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		CredentialsDatabase: DefaultCredentialsDatabase,
		ServerAddr:          DefaultServerAddr,
		SessionTTL:          DefaultSessionTTL,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if errFile := loadFile(cfg, path); errFile != nil {
			return nil, errFile
		}
	}

	applyEnv(cfg)

	if errValidate := cfg.validate(); errValidate != nil {
		return nil, errValidate
	}
	return cfg, nil
}

// loadFile overlays values from a YAML config file onto cfg.
func loadFile(cfg *Config, path string) error {
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		return fmt.Errorf("config: read %s: %w", path, errRead)
	}
	if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
		return fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	setString(&cfg.BaseDSN, "DATABASE_BASE_DSN")
	setString(&cfg.DSNOptions, "DATABASE_OPTIONS")
	setString(&cfg.CredentialsDatabase, "CREDENTIALS_DATABASE")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.SuperAdminUsername, "ADMIN_USERNAME")
	setString(&cfg.SuperAdminPassword, "ADMIN_PASSWORD")
	setString(&cfg.AuthKey, "AUTH_KEY")
	setString(&cfg.ServerAddr, "SERVER_ADDR")
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFile, "LOG_FILE")

	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		if ttl, errParse := time.ParseDuration(raw); errParse == nil && ttl > 0 {
			cfg.SessionTTL = ttl
		}
	}
}

// setString overwrites dst when the environment variable is set and non-empty.
func setString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

// validate ensures every required value is present.
func (c *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_BASE_DSN", c.BaseDSN},
		{"JWT_SECRET", c.JWTSecret},
		{"ADMIN_USERNAME", c.SuperAdminUsername},
		{"ADMIN_PASSWORD", c.SuperAdminPassword},
		{"AUTH_KEY", c.AuthKey},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissing, item.name)
		}
	}
	return nil
}
