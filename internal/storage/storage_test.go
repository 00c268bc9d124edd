package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/propmgmt/internal/config"
	"github.com/segyhp/propmgmt/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()

	backend, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverMemory}, discardLogger())
	require.NoError(t, err)
	defer backend.Close()

	assert.Nil(t, backend.DB)
	properties, err := backend.Repos.Properties.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, properties)

	seeded, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverMemory, SeedSample: true}, discardLogger())
	require.NoError(t, err)
	properties, err = seeded.Repos.Properties.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, properties, 2)
}

func TestOpen_SQLiteWithMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "propmgmt.db")

	backend, err := Open(ctx, config.DatabaseConfig{Driver: config.DriverSQLite, URL: dsn, AutoMigrate: true}, discardLogger())
	require.NoError(t, err)
	defer backend.Close()

	require.NotNil(t, backend.DB)
	require.NoError(t, backend.DB.PingContext(ctx))

	property := &domain.Property{Name: "Sunset Apartments", Address: "123 Main St"}
	require.NoError(t, backend.Repos.Properties.Create(ctx, property))
	assert.NotZero(t, property.ID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"}, discardLogger())
	assert.Error(t, err)
}

func TestOpenRedis_Disabled(t *testing.T) {
	client, err := OpenRedis(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	_, err = OpenRedis(context.Background(), config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}
