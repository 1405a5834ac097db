package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"ludo/agent"
	"ludo/game"
	"ludo/meta"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ludo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, meta.MAX_TURNS, cfg.MaxTurns)
	require.True(t, cfg.Pacing)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
log_level: debug
mode: local
difficulty: hard
pacing: false
max_turns: 400
experiment:
  games: 5
  results_dir: out
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, game.LocalMode, cfg.Mode)
	require.Equal(t, agent.Hard, cfg.Difficulty)
	require.False(t, cfg.Pacing)
	require.Equal(t, 400, cfg.MaxTurns)
	require.Equal(t, 5, cfg.Experiment.Games)
	require.Equal(t, "out", cfg.Experiment.ResultsDir)
	require.Equal(t, meta.GO_ROUTINES, cfg.Experiment.Workers)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "difficulty: hard\nmax_turns: 400\n")
	t.Setenv("LUDO_DIFFICULTY", "easy")
	t.Setenv("LUDO_EXPERIMENT_GAMES", "12")
	t.Setenv("LUDO_SEED", "99")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, agent.Easy, cfg.Difficulty)
	require.Equal(t, 400, cfg.MaxTurns)
	require.Equal(t, 12, cfg.Experiment.Games)
	require.Equal(t, uint64(99), cfg.Seed)
}

func TestLoadErrors(t *testing.T) {
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("LUDO_MAX_TURNS", "lots")
		_, err := Load("")
		require.ErrorContains(t, err, "parse env:")
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		_, err := Load(writeFile(t, "difficulty: impossible\n"))
		require.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("LUDO_LOG_LEVEL", "loud")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("non-positive turn limit", func(t *testing.T) {
		t.Setenv("LUDO_MAX_TURNS", "0")
		_, err := Load("")
		require.Error(t, err)
	})
}

func TestConfigureLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	cfg := Default()
	cfg.LogLevel = "warn"
	require.NoError(t, cfg.ConfigureLogging())
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
