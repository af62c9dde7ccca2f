// Package game holds the Innovation game aggregate: the piles and players, the
// primitive moves every effect is built from, the share resolver and dogma
// engine, achievements, setup and the turn controller.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"github.com/innovation-engine/innovation-go/internal/game/snapshot"
	"github.com/innovation-engine/innovation-go/internal/game/watchers"
	"go.uber.org/zap"
)

// Pile names shared by every game.
const (
	AgeAchievementsPile     = "achievements"
	SpecialAchievementsPile = "special"
)

const (
	minPlayers = 2
	maxPlayers = 4

	// monumentThreshold is the number of tucks or scores in one turn that claims Monument.
	monumentThreshold = 6
)

// ErrInvalidConfig is returned by New for an unusable game configuration.
var ErrInvalidConfig = errors.New("invalid game configuration")

// State is the game lifecycle state.
type State int

const (
	StateSetup State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "SETUP"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Config is everything needed to build a game.
type Config struct {
	// ID defaults to a random UUID.
	ID      string
	Players []PlayerConfig

	// Catalog holds the age 1-10 cards. Specials holds the special achievements.
	Catalog  []*cards.Card
	Specials []*cards.Card
	Registry *Registry

	Seed int64

	// AchievementsToWin overrides the player-count default when positive.
	AchievementsToWin int
}

// DefaultAchievementsToWin returns the standard win threshold for a table size.
func DefaultAchievementsToWin(players int) int {
	switch {
	case players <= 2:
		return 6
	case players == 3:
		return 5
	default:
		return 4
	}
}

// Game is the single aggregate owning every pile and player. It is not safe
// for concurrent use; play is strictly turn based.
type Game struct {
	id     string
	logger *zap.Logger

	players []*Player
	byID    map[string]*Player

	supply       [cards.MaxAge + 1]*board.Pile
	achievements *board.Pile
	special      *board.Pile
	catalog      map[string]*cards.Card

	registry *Registry
	bus      *rules.EventBus
	watchers *rules.WatcherRegistry
	tucks    *watchers.CardsMovedWatcher
	scores   *watchers.CardsMovedWatcher
	broker   *options.Broker

	rng               *rand.Rand
	achievementsToWin int

	state  State
	winner *Player
	reason string
	first  *Player

	// sources is the stack of dogma cards currently resolving, for event attribution.
	sources []cards.CardID

	analytics *gameAnalytics
	replay    *Replay
}

// New builds a game with every catalog card in its age pile and every special
// achievement in the special pile. Call Setup before play.
func New(cfg Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if n := len(cfg.Players); n < minPlayers || n > maxPlayers {
		return nil, fmt.Errorf("%w: %d players, need %d to %d", ErrInvalidConfig, n, minPlayers, maxPlayers)
	}
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	if err := registry.Validate(cfg.Catalog); err != nil {
		return nil, err
	}

	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	g := &Game{
		id:           id,
		logger:       logger.With(zap.String("game_id", id)),
		byID:         make(map[string]*Player, len(cfg.Players)),
		achievements: board.NewPile(AgeAchievementsPile),
		special:      board.NewPile(SpecialAchievementsPile),
		catalog:      make(map[string]*cards.Card, len(cfg.Catalog)+len(cfg.Specials)),
		registry:     registry,
		bus:          rules.NewEventBus(),
		watchers:     rules.NewWatcherRegistry(),
		tucks:        watchers.NewTuckWatcher(monumentThreshold),
		scores:       watchers.NewScoreWatcher(monumentThreshold),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		state:        StateSetup,
		analytics:    newGameAnalytics(),
		replay:       NewReplay(id, logger),
	}

	for _, pc := range cfg.Players {
		if pc.ID == "" {
			return nil, fmt.Errorf("%w: player without id", ErrInvalidConfig)
		}
		if _, dup := g.byID[pc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrInvalidConfig, pc.ID)
		}
		p := newPlayer(pc)
		g.players = append(g.players, p)
		g.byID[p.ID] = p
	}
	assignShareOrders(g.players)

	g.achievementsToWin = cfg.AchievementsToWin
	if g.achievementsToWin <= 0 {
		g.achievementsToWin = DefaultAchievementsToWin(len(g.players))
	}

	for age := cards.MinAge; age <= cards.MaxAge; age++ {
		g.supply[age] = board.NewPile(strconv.Itoa(age))
	}
	for _, c := range cfg.Catalog {
		if c.Age < cards.MinAge || c.Age > cards.MaxAge {
			return nil, fmt.Errorf("%w: card %s has age %d", ErrInvalidConfig, c.Name, c.Age)
		}
		if err := g.addToCatalog(c); err != nil {
			return nil, err
		}
		g.supply[c.Age].PushBottom(c)
	}
	for _, c := range cfg.Specials {
		if err := g.addToCatalog(c); err != nil {
			return nil, err
		}
		g.special.PushBottom(c)
	}

	g.broker = options.NewBroker(optionTarget{g: g}, g.Snapshot, g.emit, g.logger)

	g.watchers.AddWatcher(g.tucks)
	g.watchers.AddWatcher(g.scores)
	g.bus.Subscribe(g.watchers.NotifyWatchers)
	g.bus.Subscribe(g.logEvent)
	g.bus.Subscribe(g.analytics.observe)

	return g, nil
}

func (g *Game) addToCatalog(c *cards.Card) error {
	if _, dup := g.catalog[c.Name]; dup {
		return fmt.Errorf("%w: duplicate card %q", ErrInvalidConfig, c.Name)
	}
	g.catalog[c.Name] = c
	return nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Logger returns the game-scoped logger.
func (g *Game) Logger() *zap.Logger {
	return g.logger
}

// Players returns the players in table order.
func (g *Game) Players() []*Player {
	return append([]*Player(nil), g.players...)
}

// Player looks a player up by ID.
func (g *Game) Player(id string) *Player {
	return g.byID[id]
}

// Card looks a card up by name across the catalog and special achievements.
func (g *Game) Card(name string) *cards.Card {
	return g.catalog[name]
}

// Supply returns the draw pile for an age, or nil outside 1..10.
func (g *Game) Supply(age int) *board.Pile {
	if age < cards.MinAge || age > cards.MaxAge {
		return nil
	}
	return g.supply[age]
}

// AgeAchievements returns the pile of set-aside age achievements.
func (g *Game) AgeAchievements() *board.Pile {
	return g.achievements
}

// SpecialAchievements returns the pile of unclaimed special achievements.
func (g *Game) SpecialAchievements() *board.Pile {
	return g.special
}

// Registry returns the effect registry.
func (g *Game) Registry() *Registry {
	return g.registry
}

// State returns the lifecycle state.
func (g *Game) State() State {
	return g.state
}

// Over reports whether the game has ended. Every primitive is a no-op once it has.
func (g *Game) Over() bool {
	return g.state == StateFinished
}

// Winner returns the winning player once the game is over.
func (g *Game) Winner() *Player {
	return g.winner
}

// Reason describes how the game ended.
func (g *Game) Reason() string {
	return g.reason
}

// FirstPlayer returns the player who takes the first turn, set by Setup.
func (g *Game) FirstPlayer() *Player {
	return g.first
}

// AchievementsToWin returns the achievement count that wins the game.
func (g *Game) AchievementsToWin() int {
	return g.achievementsToWin
}

// Subscribe registers an observer for every game event and returns its handle.
func (g *Game) Subscribe(listener rules.Listener) int {
	return g.bus.Subscribe(listener)
}

// Unsubscribe removes an observer.
func (g *Game) Unsubscribe(handle int) {
	g.bus.Unsubscribe(handle)
}

// Replay returns the recorded state history.
func (g *Game) Replay() *Replay {
	return g.replay
}

// containers lists every pile in the game in a fixed order.
func (g *Game) containers() []board.Container {
	out := make([]board.Container, 0, cards.MaxAge+2+len(g.players)*8)
	for age := cards.MinAge; age <= cards.MaxAge; age++ {
		out = append(out, g.supply[age])
	}
	out = append(out, g.achievements, g.special)
	for _, p := range g.players {
		out = append(out, p.containers()...)
	}
	return out
}

// Snapshot captures every pile in the game.
func (g *Game) Snapshot() snapshot.Snapshot {
	all := g.containers()
	sources := make([]snapshot.PileSource, len(all))
	for i, c := range all {
		sources[i] = c
	}
	return snapshot.Capture(sources...)
}

// Locate returns the name of the pile holding card, or "" when it is nowhere.
func (g *Game) Locate(card *cards.Card) string {
	for _, c := range g.containers() {
		if c.Contains(card) {
			return c.PileName()
		}
	}
	return ""
}

func (g *Game) emit(evt rules.Event) {
	if n := len(g.sources); n > 0 && evt.SourceID == "" {
		evt.SourceID = string(g.sources[n-1])
	}
	g.bus.Publish(evt)
}

func (g *Game) logEvent(evt rules.Event) {
	if !evt.Type.IsMutation() && evt.Type != rules.EventGameOver && evt.Type != rules.EventShareDetected {
		return
	}
	fields := []zap.Field{
		zap.String("event", string(evt.Type)),
		zap.String("player", evt.PlayerID),
	}
	if evt.CardID != "" {
		fields = append(fields, zap.String("card", evt.CardID))
	}
	if evt.From != "" || evt.To != "" {
		fields = append(fields, zap.String("from", evt.From), zap.String("to", evt.To))
	}
	if evt.SourceID != "" {
		fields = append(fields, zap.String("source", evt.SourceID))
	}
	if evt.Description != "" {
		fields = append(fields, zap.String("detail", evt.Description))
	}
	g.logger.Debug("game event", fields...)
}

// Offer presents opts to p's decision provider and applies the choice.
func (g *Game) Offer(p *Player, prompt string, opts []options.Option) options.Option {
	if g.Over() {
		return nil
	}
	return g.broker.Offer(p.ID, p.Provider, prompt, opts)
}

// Choose presents opts to p's decision provider and returns the choice unapplied.
func (g *Game) Choose(p *Player, prompt string, opts []options.Option) options.Option {
	if g.Over() {
		return nil
	}
	return g.broker.Choose(p.ID, p.Provider, prompt, opts)
}

// Shuffle shuffles a pile with the game's seeded source.
func (g *Game) Shuffle(p *board.Pile) {
	p.Shuffle(g.rng.Shuffle)
}
