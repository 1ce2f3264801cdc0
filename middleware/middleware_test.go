package middleware

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager"
)

func newManager(t *testing.T, cfg dbmanager.ManagerConfig) *dbmanager.Manager {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	cfg.Redis = &dbmanager.RedisConfig{Servers: []dbmanager.RedisServer{{Host: mr.Host(), Port: port}}}

	m, err := dbmanager.Compose(context.Background(), cfg,
		dbmanager.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Quit(context.Background()) })
	return m
}

func TestFirstNotReady(t *testing.T) {
	m := newManager(t, dbmanager.ManagerConfig{
		EventHistory: &dbmanager.BackendConfig{Driver: dbmanager.DriverMemory},
	})

	_, ok := firstNotReady(m, nil)
	assert.True(t, ok)

	_, ok = firstNotReady(m, []string{dbmanager.BackendEventHistory, dbmanager.BackendRedis})
	assert.True(t, ok)

	name, ok := firstNotReady(m, []string{dbmanager.BackendEventHistory, dbmanager.BackendEvaluation})
	assert.False(t, ok)
	assert.Equal(t, dbmanager.BackendEvaluation, name)
}
