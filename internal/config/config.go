package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AssetsLocal = "local"
	AssetsS3    = "s3"
)

// Config holds all configuration for our application.
// Sections are squashed so every key is a flat environment variable.
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Assets    AssetsConfig    `mapstructure:",squash"`
	Report    ReportConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	AppName        string `mapstructure:"APP_NAME"`
	Port           string `mapstructure:"SERVER_PORT"`
	Host           string `mapstructure:"SERVER_HOST"`
	Env            string `mapstructure:"ENV"`
	AllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"DATABASE_DRIVER"`
	URL         string `mapstructure:"DATABASE_URL"`
	AutoMigrate bool   `mapstructure:"DATABASE_AUTO_MIGRATE"`
	SeedSample  bool   `mapstructure:"DATABASE_SEED_SAMPLE"`
}

type RedisConfig struct {
	URL      string `mapstructure:"REDIS_URL"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Timezone   string `mapstructure:"SCHEDULER_TIMEZONE"`
	DailySpec  string `mapstructure:"SCHEDULER_DAILY_SPEC"`
	WeeklySpec string `mapstructure:"SCHEDULER_WEEKLY_SPEC"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

type AuthConfig struct {
	Enabled      bool   `mapstructure:"AUTH_ENABLED"`
	Region       string `mapstructure:"COGNITO_REGION"`
	UserPoolID   string `mapstructure:"COGNITO_USER_POOL_ID"`
	ClientID     string `mapstructure:"COGNITO_CLIENT_ID"`
	ClientSecret string `mapstructure:"COGNITO_CLIENT_SECRET"`
	Domain       string `mapstructure:"COGNITO_DOMAIN"`
	Scopes       string `mapstructure:"COGNITO_SCOPES"`
	RedirectURI  string `mapstructure:"COGNITO_REDIRECT_URI"`
	CookieSecure bool   `mapstructure:"COOKIE_SECURE"`
	JWKSCacheTTL string `mapstructure:"JWKS_CACHE_TTL"`
}

type AssetsConfig struct {
	Backend   string `mapstructure:"ASSETS_BACKEND"`
	Dir       string `mapstructure:"ASSETS_DIR"`
	S3Bucket  string `mapstructure:"ASSETS_S3_BUCKET"`
	S3Prefix  string `mapstructure:"ASSETS_S3_PREFIX"`
	AWSRegion string `mapstructure:"AWS_REGION"`
	Endpoint  string `mapstructure:"AWS_ENDPOINT"`
	AccessKey string `mapstructure:"ASSETS_S3_ACCESS_KEY"`
	SecretKey string `mapstructure:"ASSETS_S3_SECRET_KEY"`
}

type ReportConfig struct {
	BasePath string `mapstructure:"REPORT_BASE_PATH"`
}

var defaults = map[string]interface{}{
	"APP_NAME":              "Property Management API",
	"SERVER_PORT":           "8080",
	"SERVER_HOST":           "0.0.0.0",
	"ENV":                   "development",
	"CORS_ALLOWED_ORIGINS":  "*",
	"DATABASE_DRIVER":       DriverMemory,
	"DATABASE_URL":          "",
	"DATABASE_AUTO_MIGRATE": false,
	"DATABASE_SEED_SAMPLE":  false,
	"REDIS_URL":             "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"SCHEDULER_TIMEZONE":    "UTC",
	"SCHEDULER_DAILY_SPEC":  "0 0 6 * * *",
	"SCHEDULER_WEEKLY_SPEC": "0 0 9 * * MON",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"HEALTH_CHECK_TIMEOUT":  "5s",
	"AUTH_ENABLED":          false,
	"COGNITO_REGION":        "us-east-1",
	"COGNITO_USER_POOL_ID":  "",
	"COGNITO_CLIENT_ID":     "",
	"COGNITO_CLIENT_SECRET": "",
	"COGNITO_DOMAIN":        "",
	"COGNITO_SCOPES":        "openid email profile",
	"COGNITO_REDIRECT_URI":  "http://localhost:8080/auth/callback",
	"COOKIE_SECURE":         false,
	"JWKS_CACHE_TTL":        "1h",
	"ASSETS_BACKEND":        AssetsLocal,
	"ASSETS_DIR":            "./static",
	"ASSETS_S3_BUCKET":      "",
	"ASSETS_S3_PREFIX":      "static",
	"AWS_REGION":            "us-east-1",
	"AWS_ENDPOINT":          "",
	"ASSETS_S3_ACCESS_KEY":  "",
	"ASSETS_S3_SECRET_KEY":  "",
	"REPORT_BASE_PATH":      "",
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()

	// Every key gets a default so AutomaticEnv can override it during Unmarshal
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("DATABASE_DRIVER must be one of memory, postgres, sqlite")
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Auth.JWKSCacheTTL); err != nil {
		return fmt.Errorf("JWKS_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid time zone: %w", err)
	}

	if c.Auth.Enabled {
		if c.Auth.UserPoolID == "" || c.Auth.ClientID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID and COGNITO_CLIENT_ID are required when AUTH_ENABLED is set")
		}
	}

	switch c.Assets.Backend {
	case AssetsLocal:
	case AssetsS3:
		if c.Assets.S3Bucket == "" {
			return fmt.Errorf("ASSETS_S3_BUCKET is required for the s3 assets backend")
		}
	default:
		return fmt.Errorf("ASSETS_BACKEND must be local or s3")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GetAllowedOrigins splits CORS_ALLOWED_ORIGINS on commas
func (c *Config) GetAllowedOrigins() []string {
	return splitList(c.Server.AllowedOrigins, ",")
}

// GetScopes splits COGNITO_SCOPES on spaces
func (c *Config) GetScopes() []string {
	return splitList(c.Auth.Scopes, " ")
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetJWKSCacheTTL returns how long fetched signing keys stay valid
func (c *Config) GetJWKSCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Auth.JWKSCacheTTL)
	return ttl
}

// GetSchedulerLocation returns the time zone cron specs are evaluated in
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
