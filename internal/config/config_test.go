package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 5*time.Second, cfg.GetHealthTimeout())
	assert.Equal(t, time.Hour, cfg.GetJWKSCacheTTL())
	assert.Equal(t, []string{"openid", "email", "profile"}, cfg.GetScopes())
	assert.Equal(t, []string{"*"}, cfg.GetAllowedOrigins())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("COGNITO_USER_POOL_ID", "us-east-1_abc")
	t.Setenv("COGNITO_CLIENT_ID", "client")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.URL)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "us-east-1_abc", cfg.Auth.UserPoolID)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.GetAllowedOrigins())
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Database:  DatabaseConfig{Driver: DriverMemory},
			Health:    HealthConfig{Timeout: "5s"},
			Auth:      AuthConfig{JWKSCacheTTL: "1h"},
			Scheduler: SchedulerConfig{Timezone: "UTC"},
			Assets:    AssetsConfig{Backend: AssetsLocal},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "SERVER_PORT"},
		{"postgres without url", func(c *Config) { c.Database.Driver = DriverPostgres }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "DATABASE_DRIVER"},
		{"bad timeout", func(c *Config) { c.Health.Timeout = "soon" }, "HEALTH_CHECK_TIMEOUT"},
		{"auth without pool", func(c *Config) { c.Auth.Enabled = true }, "COGNITO_USER_POOL_ID"},
		{"s3 without bucket", func(c *Config) { c.Assets.Backend = AssetsS3 }, "ASSETS_S3_BUCKET"},
		{"bad timezone", func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" }, "SCHEDULER_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
