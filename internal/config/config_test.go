package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNew(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
game:
  max_rounds: 50
  allow_bots: false
search:
  depth: 3
  timeout: 2s
  workers: 2
`)
	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 50, cfg.Game.MaxRounds)
	assert.False(t, cfg.Game.AllowBots)
	assert.Equal(t, 3, cfg.Search.Depth)
	assert.Equal(t, 2*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 2, cfg.Search.Workers)
}

func TestNewKeepsDefaults(t *testing.T) {
	cfg, err := New(writeConfig(t, "search:\n  depth: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Search.Depth)
	assert.Equal(t, defaultSearchWorkers, cfg.Search.Workers)
	assert.Equal(t, defaultMaxRounds, cfg.Game.MaxRounds)
	assert.True(t, cfg.Game.AllowBots)
}

func TestNewPortFromEnv(t *testing.T) {
	t.Setenv(serverPortEnv, ":7070")
	cfg, err := New(writeConfig(t, "server:\n  addr: \":9090\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{name: "depth", body: "search:\n  depth: 0\n", err: ErrInvalidSearchDepth},
		{name: "workers", body: "search:\n  workers: -1\n", err: ErrInvalidWorkers},
		{name: "rounds", body: "game:\n  max_rounds: 0\n", err: ErrInvalidMaxRounds},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
