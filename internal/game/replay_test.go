package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewReplay(t *testing.T) {
	replay := NewReplay("game-123", zaptest.NewLogger(t))
	assert.Equal(t, "game-123", replay.GameID)
	assert.Equal(t, 0, replay.CurrentIndex)
	assert.Equal(t, 0, replay.Size())
	assert.Nil(t, replay.Next())
	assert.Nil(t, replay.Previous())
}

func TestReplayNavigation(t *testing.T) {
	replay := NewReplay("game-123", zaptest.NewLogger(t))
	for i := 0; i < 5; i++ {
		replay.RecordState(&ReplayEntry{Turn: i + 1})
	}
	assert.Equal(t, 5, replay.Size())

	replay.Start()
	assert.Equal(t, 1, replay.Next().Turn)
	assert.Equal(t, 2, replay.Next().Turn)
	assert.Equal(t, 2, replay.CurrentIndex)

	// Previous steps back onto the entry Next just returned.
	assert.Equal(t, 2, replay.Previous().Turn)
	assert.Equal(t, 1, replay.CurrentIndex)

	assert.Equal(t, 4, replay.Skip(2).Turn)
	assert.Equal(t, 5, replay.Skip(10).Turn, "clamped to the last entry")
	assert.Equal(t, 1, replay.Skip(-10).Turn, "clamped to the first entry")

	assert.Equal(t, 3, replay.GetStateAt(2).Turn)
	assert.Nil(t, replay.GetStateAt(5))
	assert.Nil(t, replay.GetStateAt(-1))
}

func TestGameRecordsReplayEntries(t *testing.T) {
	f, c := startedFixture(t, 2, nil)
	p := c.ActivePlayer()
	require.NoError(t, c.Perform(p, Action{Kind: ActionDraw}))

	replay := f.g.Replay()
	require.Equal(t, 2, replay.Size())

	setup := replay.GetStateAt(0)
	assert.Equal(t, "setup", setup.Action)
	assert.Equal(t, 0, setup.Turn)

	draw := replay.GetStateAt(1)
	assert.Equal(t, "draw", draw.Action)
	assert.Equal(t, p.ID, draw.PlayerID)
	assert.Equal(t, 1, draw.Turn)
	assert.Equal(t, draw.State.Checksum(), draw.Checksum)
	assert.NotEqual(t, setup.Checksum, draw.Checksum)
	assert.Equal(t, 2, draw.State.Len(p.Hand.Name()))
}

func TestReplaySaveAndLoad(t *testing.T) {
	f, c := startedFixture(t, 2, nil)
	p := c.ActivePlayer()
	require.NoError(t, c.Perform(p, Action{Kind: ActionDraw}))

	dir := filepath.Join(t.TempDir(), "replays")
	saved := f.g.Replay()
	require.NoError(t, saved.SaveToFile(dir))
	_, err := os.Stat(filepath.Join(dir, saved.GameID+".replay"))
	require.NoError(t, err)

	loaded, err := LoadReplayFromFile(dir, saved.GameID, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, saved.GameID, loaded.GameID)
	require.Equal(t, saved.Size(), loaded.Size())
	for i := 0; i < saved.Size(); i++ {
		want, got := saved.GetStateAt(i), loaded.GetStateAt(i)
		assert.Equal(t, want.Action, got.Action)
		assert.Equal(t, want.Turn, got.Turn)
		assert.Equal(t, want.Checksum, got.Checksum)
		assert.Equal(t, want.Checksum, got.State.Checksum(), "entry %d", i)
		assert.True(t, want.State.Equal(got.State), "entry %d", i)
	}
}

func TestLoadReplayRejectsTamperedEntry(t *testing.T) {
	f, _ := startedFixture(t, 2, nil)
	replay := f.g.Replay()
	replay.GetStateAt(0).Checksum = "0000"

	dir := t.TempDir()
	require.NoError(t, replay.SaveToFile(dir))
	_, err := LoadReplayFromFile(dir, replay.GameID, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrReplayCorrupt)
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplayFromFile(t.TempDir(), "nope", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReplayLogsSaveAndLoad(t *testing.T) {
	f, _ := startedFixture(t, 2, nil)
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	replay := NewReplay(f.g.ID(), logger)
	for _, entry := range f.g.Replay().States {
		replay.RecordState(entry)
	}
	dir := t.TempDir()
	require.NoError(t, replay.SaveToFile(dir))
	_, err := LoadReplayFromFile(dir, f.g.ID(), logger)
	require.NoError(t, err)

	saved := logs.FilterMessage("saved replay to disk").All()
	require.Len(t, saved, 1)
	assert.Equal(t, int64(replay.Size()), saved[0].ContextMap()["state_count"])
	assert.Equal(t, dir, saved[0].ContextMap()["directory"])

	loaded := logs.FilterMessage("loaded replay from disk").All()
	require.Len(t, loaded, 1)
	assert.Equal(t, f.g.ID(), loaded[0].ContextMap()["game_id"])
}
