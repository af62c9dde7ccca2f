package game

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/innovation-engine/innovation-go/internal/game/snapshot"
	"go.uber.org/zap"
)

const replayVersion = 1

// ErrReplayCorrupt reports a saved entry whose state no longer matches its checksum.
var ErrReplayCorrupt = errors.New("replay corrupt")

type replayMetadata struct {
	GameID     string
	Timestamp  time.Time
	Version    int
	EntryCount int
}

// ReplayEntry is the game state recorded after setup or after one action.
type ReplayEntry struct {
	Turn     int
	PlayerID string
	Action   string
	State    snapshot.Snapshot
	Checksum string
	At       time.Time
}

// Replay is the sequence of recorded states of one game with a playback cursor.
type Replay struct {
	GameID       string
	States       []*ReplayEntry
	CurrentIndex int
	logger       *zap.Logger
}

// NewReplay creates an empty replay.
func NewReplay(gameID string, logger *zap.Logger) *Replay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replay{
		GameID: gameID,
		States: make([]*ReplayEntry, 0, 64),
		logger: logger,
	}
}

func (g *Game) replayEntry(turn int, playerID, action string) *ReplayEntry {
	state := g.Snapshot()
	return &ReplayEntry{
		Turn:     turn,
		PlayerID: playerID,
		Action:   action,
		State:    state,
		Checksum: state.Checksum(),
		At:       time.Now(),
	}
}

// RecordState appends an entry.
func (r *Replay) RecordState(entry *ReplayEntry) {
	r.States = append(r.States, entry)
}

// Start rewinds the cursor.
func (r *Replay) Start() {
	r.CurrentIndex = 0
}

// Next returns the entry at the cursor and advances it.
func (r *Replay) Next() *ReplayEntry {
	if r.CurrentIndex < len(r.States) {
		entry := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return entry
	}
	return nil
}

// Previous moves the cursor back and returns the entry there.
func (r *Replay) Previous() *ReplayEntry {
	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Skip moves the cursor by count entries, clamped to the recorded range.
func (r *Replay) Skip(count int) *ReplayEntry {
	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.States) {
		newIndex = len(r.States) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	if r.CurrentIndex < len(r.States) {
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Size returns the number of recorded entries.
func (r *Replay) Size() int {
	return len(r.States)
}

// GetStateAt returns the entry at index, or nil.
func (r *Replay) GetStateAt(index int) *ReplayEntry {
	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}

// SaveToFile writes the replay to <directory>/<game id>.replay as gzipped gob.
func (r *Replay) SaveToFile(directory string) error {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("create replay directory: %w", err)
	}

	file, err := os.Create(replayPath(directory, r.GameID))
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	enc := gob.NewEncoder(zw)
	meta := replayMetadata{
		GameID:     r.GameID,
		Timestamp:  time.Now(),
		Version:    replayVersion,
		EntryCount: len(r.States),
	}
	if err := enc.Encode(&meta); err != nil {
		return fmt.Errorf("encode replay metadata: %w", err)
	}
	for i, entry := range r.States {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("encode replay entry %d: %w", i, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush replay: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close replay file: %w", err)
	}

	r.logger.Info("saved replay to disk",
		zap.String("game_id", r.GameID),
		zap.Int("state_count", len(r.States)),
		zap.String("directory", directory),
	)
	return nil
}

// LoadReplayFromFile reads a replay written by SaveToFile and verifies every
// entry against its checksum.
func LoadReplayFromFile(directory, gameID string, logger *zap.Logger) (*Replay, error) {
	file, err := os.Open(replayPath(directory, gameID))
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	defer zr.Close()

	dec := gob.NewDecoder(zr)
	var meta replayMetadata
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode replay metadata: %w", err)
	}
	if meta.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", meta.Version)
	}

	replay := NewReplay(meta.GameID, logger)
	for i := 0; i < meta.EntryCount; i++ {
		var entry ReplayEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decode replay entry %d: %w", i, err)
		}
		if entry.State.Checksum() != entry.Checksum {
			return nil, fmt.Errorf("%w: entry %d (%s)", ErrReplayCorrupt, i, entry.Action)
		}
		replay.States = append(replay.States, &entry)
	}

	replay.logger.Info("loaded replay from disk",
		zap.String("game_id", gameID),
		zap.Int("state_count", replay.Size()),
	)
	return replay, nil
}

func replayPath(directory, gameID string) string {
	return filepath.Join(directory, gameID+".replay")
}
