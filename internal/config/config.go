package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	LogLevel string
	Audit    AuditConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Seed     SeedConfig

	allowedOrigins string
}

// appEnv holds the unprefixed settings shared by every mode
type appEnv struct {
	AppMode        string `envconfig:"APP_MODE" default:"dev"`
	Port           string `envconfig:"PORT" default:"3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`
	AuditSchedule  string `envconfig:"AUDIT_SCHEDULE" default:"@every 15m"`
	AuditEnabled   bool   `envconfig:"AUDIT_ENABLED" default:"true"`
	CookieSameSite string `envconfig:"COOKIE_SAMESITE" default:"lax"`
	CookieDomain   string `envconfig:"COOKIE_DOMAIN"`
	AccessMinutes  int    `envconfig:"ACCESS_TOKEN_MINUTES" default:"15"`
}

// DatabaseConfig holds database configuration, read with the DEV_/PROD_ prefix
type DatabaseConfig struct {
	Driver       string `envconfig:"DB_DRIVER" default:"mysql"`
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Port         string `envconfig:"DB_PORT" default:"3306"`
	User         string `envconfig:"DB_USER" default:"root"`
	Password     string `envconfig:"DB_PASS"`
	DBName       string `envconfig:"DB_NAME" default:"learnhub"`
	Path         string `envconfig:"DB_PATH" default:"learnhub.db"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
}

// JWTConfig holds access token settings
type JWTConfig struct {
	Secret          string `envconfig:"JWT_SECRET" default:"default_secret"`
	Issuer          string `envconfig:"JWT_ISSUER" default:"learnhub"`
	AccessTokenMins int    `ignored:"true"`
}

// AccessTTL returns the configured access token lifetime
func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenMins) * time.Minute
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `ignored:"true"`
	Domain   string `ignored:"true"`
}

// AuditConfig holds the capacity audit schedule
type AuditConfig struct {
	Enabled  bool
	Schedule string
}

// SeedConfig holds the initial admin account
type SeedConfig struct {
	AdminName     string `envconfig:"SEED_ADMIN_NAME" default:"Administrator"`
	AdminEmail    string `envconfig:"SEED_ADMIN_EMAIL" default:"admin@learnhub.local"`
	AdminPassword string `envconfig:"SEED_ADMIN_PASSWORD"`
}

// Load reads configuration from .env file and environment variables.
// It reports whether a .env file was found so the caller can log it.
func Load() (*Config, bool, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	envFileFound := godotenv.Load() == nil

	cfg, err := FromEnv()
	return cfg, envFileFound, err
}

// FromEnv builds the configuration from the process environment only
func FromEnv() (*Config, error) {
	var app appEnv
	if err := envconfig.Process("", &app); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(app.AppMode)
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}
	prefix := modePrefix(appMode)

	var db DatabaseConfig
	if err := envconfig.Process(prefix, &db); err != nil {
		return nil, fmt.Errorf("failed to read database config: %w", err)
	}
	switch db.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid %s_DB_DRIVER: '%s' (must be mysql, postgres or sqlite)", prefix, db.Driver)
	}

	var jwtCfg JWTConfig
	if err := envconfig.Process(prefix, &jwtCfg); err != nil {
		return nil, fmt.Errorf("failed to read jwt config: %w", err)
	}
	if app.AccessMinutes < 1 {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_MINUTES: %d", app.AccessMinutes)
	}
	jwtCfg.AccessTokenMins = app.AccessMinutes
	if appMode == "prod" && (jwtCfg.Secret == "default_secret" || len(jwtCfg.Secret) < 32) {
		return nil, fmt.Errorf("%s_JWT_SECRET must be set to at least 32 characters in prod", prefix)
	}

	var cookie CookieConfig
	if err := envconfig.Process(prefix, &cookie); err != nil {
		return nil, fmt.Errorf("failed to read cookie config: %w", err)
	}
	cookie.SameSite = app.CookieSameSite
	cookie.Domain = app.CookieDomain

	var seed SeedConfig
	if err := envconfig.Process("", &seed); err != nil {
		return nil, fmt.Errorf("failed to read seed config: %w", err)
	}

	return &Config{
		AppMode:  appMode,
		Port:     app.Port,
		LogLevel: app.LogLevel,
		Audit: AuditConfig{
			Enabled:  app.AuditEnabled,
			Schedule: app.AuditSchedule,
		},
		Database:       db,
		JWT:            jwtCfg,
		Cookie:         cookie,
		Seed:           seed,
		allowedOrigins: app.AllowedOrigins,
	}, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD"
	}
	return "DEV"
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.allowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://learnhub.example.com"
	}
	return c.allowedOrigins
}
