package extension

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtensionLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	e := New(
		WithLogger(quietLogger()),
		WithManagerConfig(dbmanager.ManagerConfig{
			EventHistory: &dbmanager.BackendConfig{Driver: dbmanager.DriverMemory},
			Redis:        &dbmanager.RedisConfig{Servers: []dbmanager.RedisServer{{Host: mr.Host(), Port: port}}},
		}),
	)
	assert.Equal(t, ExtensionName, e.Name())

	ctx := context.Background()
	assert.Error(t, e.Start(ctx))
	assert.NoError(t, e.Stop(ctx))

	require.NoError(t, e.init(ctx))
	require.NotNil(t, e.Manager())
	require.NoError(t, e.Start(ctx))
	assert.NoError(t, e.Health(ctx))
	assert.NoError(t, e.Stop(ctx))
}

func TestExtensionHealthReportsFailingBackends(t *testing.T) {
	e := New(
		WithLogger(quietLogger()),
		WithDisableMigrate(),
		WithManagerConfig(dbmanager.ManagerConfig{
			Configuration: &dbmanager.BackendConfig{Driver: dbmanager.DriverMemory},
			Redis:         &dbmanager.RedisConfig{Servers: []dbmanager.RedisServer{{Host: "127.0.0.1", Port: 1}}},
		}),
		WithManagerOptions(dbmanager.WithProbeTimeout(200*time.Millisecond)),
	)
	ctx := context.Background()
	require.NoError(t, e.init(ctx))
	t.Cleanup(func() { _ = e.Stop(ctx) })

	err := e.Health(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dbmanager.BackendRedis)
}

func TestExtensionConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbmanager.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redis:\n  servers: []\n"), 0o600))

	e := New(WithLogger(quietLogger()), WithConfigFile(path))
	err := e.init(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbmanager.ErrInvalidConfig)
}
