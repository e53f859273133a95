package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_DevDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, "@every 15m", cfg.Audit.Schedule)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
	assert.Equal(t, "lax", cfg.Cookie.SameSite)
}

func TestFromEnv_PrefixFollowsMode(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DEV_DB_HOST", "dev-host")
	t.Setenv("PROD_DB_HOST", "prod-host")
	t.Setenv("PROD_DB_DRIVER", "postgres")
	t.Setenv("PROD_DB_PORT", "5432")
	t.Setenv("PROD_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PROD_COOKIE_SECURE", "true")
	t.Setenv("ACCESS_TOKEN_MINUTES", "30")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "prod-host", cfg.Database.Host)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres:prod-host:5432/learnhub", cfg.Database.Describe())
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL())
	assert.Equal(t, "https://app.example.com", cfg.GetAllowedOrigins())
}

func TestFromEnv_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown mode", map[string]string{"APP_MODE": "staging"}},
		{"unknown driver", map[string]string{"APP_MODE": "dev", "DEV_DB_DRIVER": "oracle"}},
		{"zero token lifetime", map[string]string{"APP_MODE": "dev", "ACCESS_TOKEN_MINUTES": "0"}},
		{"default secret in prod", map[string]string{"APP_MODE": "prod"}},
		{"short secret in prod", map[string]string{"APP_MODE": "prod", "PROD_JWT_SECRET": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestDSNBuilders(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{Host: "db", Port: "3306", User: "app", Password: "pw", DBName: "learnhub"}
	assert.Equal(t, "app:pw@tcp(db:3306)/learnhub?charset=utf8mb4&parseTime=True&loc=Local", buildMySQLDSN(d))
	assert.Equal(t, "host=db port=3306 user=app password=pw dbname=learnhub sslmode=disable TimeZone=UTC", buildPostgresDSN(d))

	_, err := dialectorFor(DatabaseConfig{Driver: "mongo"})
	assert.Error(t, err)
}

func TestConnectDatabase_SQLite(t *testing.T) {
	cfg := &Config{
		AppMode: "prod",
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   t.TempDir() + "/app.db",
		},
	}

	db, err := ConnectDatabase(cfg)
	require.NoError(t, err)
	assert.NoError(t, HealthCheck(db))
	assert.NoError(t, CloseDatabase(db))
	assert.Error(t, HealthCheck(nil))
}
