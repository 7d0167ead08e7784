package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
environment: cartpole
batch_size: 4
max_steps: 1000
seed: 42
time_limit: 200
action_repeat: 2
metrics:
  enabled: true
  addr: ":9090"
replay:
  enabled: true
  path: /tmp/replay.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnvCartPole, cfg.Environment)
	assert.Equal(t, 4, cfg.BatchSize)
	assert.Equal(t, 1000, cfg.MaxSteps)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 200, cfg.TimeLimit)
	assert.Equal(t, 2, cfg.ActionRepeat)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.True(t, cfg.Replay.Enabled)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: chainwalk
max_episodes: 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.BatchSize)
	assert.Equal(t, 5, cfg.MaxEpisodes)
	assert.Equal(t, 0, cfg.MaxSteps)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown environment", "environment: pong\nmax_steps: 1\n"},
		{"no budget", "environment: chainwalk\n"},
		{"negative budget", "environment: chainwalk\nmax_steps: -1\n"},
		{"replay without path", "environment: chainwalk\nmax_steps: 1\nreplay:\n  enabled: true\n"},
		{"metrics without addr", "environment: chainwalk\nmax_steps: 1\nmetrics:\n  enabled: true\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
