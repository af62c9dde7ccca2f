package tournament

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/ai"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures how a series is played.
type Options struct {
	Games    int
	Workers  int
	MaxTurns int
	// Seed of the first game; game n uses Seed+n.
	Seed              int64
	AchievementsToWin int

	Catalog  []*cards.Card
	Specials []*cards.Card
	Registry *game.Registry

	// ReplayDir receives one replay file per game when set.
	ReplayDir string
}

// Manager manages series
type Manager struct {
	series map[string]*Series
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewManager creates a new series manager
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		series: make(map[string]*Series),
		logger: logger,
	}
}

// CreateSeries creates and tracks a new series.
func (m *Manager) CreateSeries() *Series {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := NewSeries()
	m.series[s.ID] = s
	m.logger.Info("series created", zap.String("series_id", s.ID))
	return s
}

// GetSeries retrieves a series by ID
func (m *Manager) GetSeries(id string) (*Series, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.series[id]
	return s, ok
}

// RemoveSeries removes a series
func (m *Manager) RemoveSeries(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.series, id)
	m.logger.Info("series removed", zap.String("series_id", id))
}

// GetActiveSeriesCount returns the count of unfinished series
func (m *Manager) GetActiveSeriesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, s := range m.series {
		if s.GetState() != SeriesStateFinished {
			count++
		}
	}
	return count
}

// Run plays opts.Games games of s on up to opts.Workers goroutines. The first
// failing game cancels the rest and its error is returned.
func (m *Manager) Run(ctx context.Context, s *Series, opts Options) error {
	if s.GetState() != SeriesStateWaiting {
		return ErrSeriesStarted
	}
	if n := s.EntrantCount(); n < 2 {
		return fmt.Errorf("not enough entrants: %d", n)
	}
	if opts.Games <= 0 {
		return errors.New("series needs at least one game")
	}
	if opts.MaxTurns <= 0 {
		return fmt.Errorf("%w: %d", ai.ErrNoTurnLimit, opts.MaxTurns)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	s.SetState(SeriesStateInProgress)
	logger := m.logger.With(zap.String("series_id", s.ID))
	logger.Info("series started",
		zap.Int("games", opts.Games),
		zap.Int("workers", workers),
		zap.Int("entrants", s.EntrantCount()),
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for n := 0; n < opts.Games; n++ {
		eg.Go(func() error {
			rec, err := m.playGame(ctx, s, n, opts, logger)
			if err != nil {
				return fmt.Errorf("game %d: %w", n+1, err)
			}
			return s.RecordResult(rec)
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Error("series aborted", zap.Error(err))
		return err
	}

	s.SetState(SeriesStateFinished)
	snap := s.Snapshot()
	for _, e := range snap.Standings {
		logger.Info("series standing",
			zap.String("entrant", e.Name),
			zap.String("strategy", e.Strategy),
			zap.Int("points", e.Points),
			zap.Int("wins", e.Wins),
		)
	}
	return nil
}

func (m *Manager) playGame(ctx context.Context, s *Series, n int, opts Options, logger *zap.Logger) (GameRecord, error) {
	seed := opts.Seed + int64(n)
	seats := s.Seating(n)

	cfg := game.Config{
		ID:                fmt.Sprintf("%s-%03d", s.ID, n+1),
		Catalog:           opts.Catalog,
		Specials:          opts.Specials,
		Registry:          opts.Registry,
		Seed:              seed,
		AchievementsToWin: opts.AchievementsToWin,
	}
	players := make(map[string]*ai.Player, len(seats))
	seating := make([]string, 0, len(seats))
	for i, e := range seats {
		players[e.Name] = ai.NewPlayer(e.Name, e.Strategy, seed*int64(len(seats))+int64(i), logger)
		cfg.Players = append(cfg.Players, game.PlayerConfig{
			ID:       e.Name,
			Name:     e.Name,
			IsAI:     true,
			Provider: players[e.Name],
		})
		seating = append(seating, e.Name)
	}

	g, err := game.New(cfg, logger)
	if err != nil {
		return GameRecord{}, err
	}
	if err := g.Setup(); err != nil {
		return GameRecord{}, err
	}
	res, err := ai.Run(ctx, g, players, opts.MaxTurns)
	if err != nil {
		return GameRecord{}, err
	}
	if opts.ReplayDir != "" {
		if err := g.Replay().SaveToFile(opts.ReplayDir); err != nil {
			return GameRecord{}, err
		}
	}

	return GameRecord{
		Number:  n + 1,
		GameID:  res.GameID,
		Seating: seating,
		Winner:  res.Winner,
		Reason:  res.Reason,
		Turns:   res.Turns,
		Actions: res.Actions,
	}, nil
}
