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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Game.Players)
	assert.Equal(t, int64(1), cfg.Game.Seed)
	assert.Equal(t, 500, cfg.Game.MaxTurns)
	assert.Equal(t, SourceFile, cfg.Game.CatalogSource)
	assert.Equal(t, "data/cards.txt", cfg.Game.CatalogPath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, 0, cfg.Series.Games)
	assert.Equal(t, 4, cfg.Series.Workers)
	assert.Equal(t, []string{"greedy", "random"}, cfg.Series.Strategies)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.Players)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
game:
  players: 4
  seed: 99
  strategy: random
  catalog_source: postgres
logging:
  level: debug
  format: json
database:
  url: postgres://localhost/cards
  connect_timeout: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, "random", cfg.Game.Strategy)
	assert.Equal(t, SourcePostgres, cfg.Game.CatalogSource)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "postgres://localhost/cards", cfg.Database.URL)
	assert.Equal(t, 2*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "data/achievements.txt", cfg.Game.AchievementsPath, "unset keys keep defaults")
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "game:\n  players: 3\n")
	t.Setenv("INNOVATION_GAME_PLAYERS", "4")
	t.Setenv("INNOVATION_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"too many players", "game:\n  players: 5\n", "game.players"},
		{"negative turns", "game:\n  max_turns: -1\n", "game.max_turns"},
		{"unlimited turns", "game:\n  max_turns: 0\n", "game.max_turns"},
		{"unknown source", "game:\n  catalog_source: s3\n", "game.catalog_source"},
		{"unknown strategy", "game:\n  strategy: mcts\n", "game.strategy"},
		{"unknown level", "logging:\n  level: trace\n", "logging.level"},
		{"unknown format", "logging:\n  format: xml\n", "logging.format"},
		{"no workers", "series:\n  workers: 0\n", "series.workers"},
		{"lone entrant", "series:\n  games: 3\n  strategies: [greedy]\n", "series.strategies"},
		{"unknown entrant", "series:\n  games: 3\n  strategies: [greedy, mcts]\n", "mcts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "game: [players\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoadSeries(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
series:
  games: 12
  workers: 2
  strategies: [greedy, greedy, random]
`))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Series.Games)
	assert.Equal(t, 2, cfg.Series.Workers)
	assert.Equal(t, []string{"greedy", "greedy", "random"}, cfg.Series.Strategies)
}
