// Package tournament plays series of computer games and keeps standings.
package tournament

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/innovation-engine/innovation-go/internal/game/ai"
)

// Points awarded per game.
const (
	WinPoints  = 3
	DrawPoints = 1
)

// Series errors.
var (
	ErrSeriesStarted  = errors.New("series already started")
	ErrUnknownEntrant = errors.New("entrant not found")
)

// SeriesState represents the state of a series
type SeriesState int

const (
	SeriesStateWaiting SeriesState = iota
	SeriesStateInProgress
	SeriesStateFinished
)

func (s SeriesState) String() string {
	switch s {
	case SeriesStateWaiting:
		return "WAITING"
	case SeriesStateInProgress:
		return "IN_PROGRESS"
	case SeriesStateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Entrant is one computer strategy seated in every game of a series.
type Entrant struct {
	Name     string
	Strategy ai.Strategy
	Points   int
	Wins     int
	Losses   int
	Draws    int
}

// GameRecord is the outcome of one game of a series.
type GameRecord struct {
	Number  int
	GameID  string
	Seating []string
	Winner  string
	Reason  string
	Turns   int
	Actions int
}

// EntrantSnapshot captures entrant standings for external use.
type EntrantSnapshot struct {
	Name     string
	Strategy string
	Points   int
	Wins     int
	Losses   int
	Draws    int
}

// SeriesSnapshot captures a consistent view of a series.
type SeriesSnapshot struct {
	ID         string
	State      SeriesState
	Standings  []EntrantSnapshot
	Games      []GameRecord
	CreateTime time.Time
	StartTime  *time.Time
	EndTime    *time.Time
}

// Series is a set of games between the same entrants with rotating seats.
type Series struct {
	ID           string
	State        SeriesState
	Entrants     map[string]*Entrant
	EntrantOrder []string // Maintains insertion order
	Games        []*GameRecord
	CreateTime   time.Time
	StartTime    *time.Time
	EndTime      *time.Time
	mu           sync.RWMutex
}

// NewSeries creates an empty series.
func NewSeries() *Series {
	return &Series{
		ID:         uuid.New().String(),
		State:      SeriesStateWaiting,
		Entrants:   make(map[string]*Entrant),
		CreateTime: time.Now(),
	}
}

// AddEntrant adds a strategy under a unique name.
func (s *Series) AddEntrant(name string, strategy ai.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != SeriesStateWaiting {
		return ErrSeriesStarted
	}
	if name == "" {
		return errors.New("entrant name required")
	}
	if _, exists := s.Entrants[name]; exists {
		return fmt.Errorf("entrant %q already joined", name)
	}

	s.Entrants[name] = &Entrant{Name: name, Strategy: strategy}
	s.EntrantOrder = append(s.EntrantOrder, name)
	return nil
}

// RemoveEntrant removes an entrant before the series starts.
func (s *Series) RemoveEntrant(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != SeriesStateWaiting {
		return ErrSeriesStarted
	}
	if _, exists := s.Entrants[name]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownEntrant, name)
	}

	delete(s.Entrants, name)
	for i, n := range s.EntrantOrder {
		if n == name {
			s.EntrantOrder = append(s.EntrantOrder[:i], s.EntrantOrder[i+1:]...)
			break
		}
	}
	return nil
}

// EntrantCount returns the number of entrants.
func (s *Series) EntrantCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Entrants)
}

// Seating returns the seat order for game n (zero based). Seats rotate so
// every entrant starts equally often.
func (s *Series) Seating(n int) []Entrant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := len(s.EntrantOrder)
	seats := make([]Entrant, 0, count)
	for i := 0; i < count; i++ {
		name := s.EntrantOrder[(n+i)%count]
		seats = append(seats, Entrant{Name: name, Strategy: s.Entrants[name].Strategy})
	}
	return seats
}

// SetState sets the series state
func (s *Series) SetState(state SeriesState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.State = state
	now := time.Now()
	if state == SeriesStateInProgress && s.StartTime == nil {
		s.StartTime = &now
	} else if state == SeriesStateFinished {
		s.EndTime = &now
	}
}

// GetState returns the current series state
func (s *Series) GetState() SeriesState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State
}

// RecordResult stores a game outcome and updates the standings. A game
// without a winner is a draw for every seated entrant.
func (s *Series) RecordResult(rec GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range rec.Seating {
		if _, ok := s.Entrants[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownEntrant, name)
		}
	}
	if rec.Winner != "" {
		if _, ok := s.Entrants[rec.Winner]; !ok {
			return fmt.Errorf("%w: winner %s", ErrUnknownEntrant, rec.Winner)
		}
	}

	for _, name := range rec.Seating {
		e := s.Entrants[name]
		switch {
		case rec.Winner == "":
			e.Draws++
			e.Points += DrawPoints
		case rec.Winner == name:
			e.Wins++
			e.Points += WinPoints
		default:
			e.Losses++
		}
	}
	s.Games = append(s.Games, &rec)
	return nil
}

// Snapshot returns a consistent copy of the series. Standings are ordered by
// points, then wins, then name; games by number.
func (s *Series) Snapshot() SeriesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	standings := make([]EntrantSnapshot, 0, len(s.EntrantOrder))
	for _, name := range s.EntrantOrder {
		e := s.Entrants[name]
		standings = append(standings, EntrantSnapshot{
			Name:     e.Name,
			Strategy: e.Strategy.String(),
			Points:   e.Points,
			Wins:     e.Wins,
			Losses:   e.Losses,
			Draws:    e.Draws,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Name < b.Name
	})

	games := make([]GameRecord, 0, len(s.Games))
	for _, g := range s.Games {
		rec := *g
		rec.Seating = append([]string(nil), g.Seating...)
		games = append(games, rec)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].Number < games[j].Number })

	return SeriesSnapshot{
		ID:         s.ID,
		State:      s.State,
		Standings:  standings,
		Games:      games,
		CreateTime: s.CreateTime,
		StartTime:  cloneTime(s.StartTime),
		EndTime:    cloneTime(s.EndTime),
	}
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	cp := *src
	return &cp
}
