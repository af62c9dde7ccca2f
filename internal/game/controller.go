package game

import (
	"errors"
	"fmt"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"go.uber.org/zap"
)

var (
	// ErrIllegalAction is returned for an action the player may not take now.
	ErrIllegalAction = errors.New("illegal action")
	// ErrNotYourTurn is returned when a player acts out of turn.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrGameOver is returned for any action after the game ended.
	ErrGameOver = errors.New("game is over")
	// ErrNotStarted is returned for actions before Setup completed.
	ErrNotStarted = errors.New("game has not been set up")
)

// ActionKind is one of the four actions a player may take.
type ActionKind string

const (
	ActionDraw    ActionKind = "draw"
	ActionMeld    ActionKind = "meld"
	ActionAchieve ActionKind = "achieve"
	ActionDogma   ActionKind = "dogma"
)

// Action is a single player action. Meld uses Card, Achieve uses Age and
// Dogma uses Color and names the top card there in Card; Draw needs nothing.
type Action struct {
	Kind  ActionKind
	Card  *cards.Card
	Age   int
	Color cards.Color
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMeld:
		return fmt.Sprintf("meld %s", a.Card)
	case ActionAchieve:
		return fmt.Sprintf("achieve %d", a.Age)
	case ActionDogma:
		if a.Card != nil {
			return fmt.Sprintf("dogma %s", a.Card)
		}
		return fmt.Sprintf("dogma %s", a.Color)
	default:
		return string(a.Kind)
	}
}

// LegalActions lists every action p may take now.
func (g *Game) LegalActions(p *Player) []Action {
	if g.Over() {
		return nil
	}
	actions := []Action{{Kind: ActionDraw, Color: cards.ColorNone}}
	for _, c := range p.Hand.Cards() {
		actions = append(actions, Action{Kind: ActionMeld, Card: c, Color: cards.ColorNone})
	}
	for _, age := range g.EligibleAchievements(p) {
		actions = append(actions, Action{Kind: ActionAchieve, Age: age, Color: cards.ColorNone})
	}
	for _, s := range p.Board.Stacks() {
		if !s.IsEmpty() {
			actions = append(actions, Action{Kind: ActionDogma, Card: s.Top(), Color: s.Color()})
		}
	}
	return actions
}

func (g *Game) isLegal(p *Player, a Action) bool {
	for _, legal := range g.LegalActions(p) {
		if legal.Kind != a.Kind {
			continue
		}
		switch a.Kind {
		case ActionDraw:
			return true
		case ActionMeld:
			if legal.Card == a.Card {
				return true
			}
		case ActionAchieve:
			if legal.Age == a.Age {
				return true
			}
		case ActionDogma:
			if legal.Color == a.Color {
				return true
			}
		}
	}
	return false
}

var actionPhases = map[ActionKind]rules.Phase{
	ActionDraw:    rules.PhaseDrawing,
	ActionMeld:    rules.PhaseMelding,
	ActionAchieve: rules.PhaseAchieving,
	ActionDogma:   rules.PhaseDogma,
}

// Controller runs turns: it checks who may act, performs the action and
// advances the turn.
type Controller struct {
	g      *Game
	turns  *rules.TurnManager
	logger *zap.Logger
}

// NewController creates a controller for a game that has been set up.
func NewController(g *Game) (*Controller, error) {
	if g.State() == StateSetup {
		return nil, ErrNotStarted
	}
	c := &Controller{
		g:      g,
		turns:  rules.NewTurnManager(g.TurnOrder()),
		logger: g.logger,
	}
	g.emit(rules.NewEventWithAmount(rules.EventTurnStarted, c.turns.ActivePlayer(), "", c.turns.TurnNumber()))
	return c, nil
}

// ActivePlayer returns the player whose turn it is.
func (c *Controller) ActivePlayer() *Player {
	return c.g.Player(c.turns.ActivePlayer())
}

// TurnNumber returns the current turn (1-based).
func (c *Controller) TurnNumber() int {
	return c.turns.TurnNumber()
}

// ActionsRemaining returns the actions the active player has left this turn.
func (c *Controller) ActionsRemaining() int {
	return c.turns.ActionsRemaining()
}

// Perform executes one action for p.
func (c *Controller) Perform(p *Player, a Action) error {
	g := c.g
	if g.Over() {
		return ErrGameOver
	}
	if p == nil || p != c.ActivePlayer() {
		return fmt.Errorf("%s: %w", p, ErrNotYourTurn)
	}
	if !g.isLegal(p, a) {
		return fmt.Errorf("%s %s: %w", p, a, ErrIllegalAction)
	}
	if a.Kind == ActionDogma {
		a.Card = p.Board.Stack(a.Color).Top()
	}
	if err := c.turns.Begin(actionPhases[a.Kind]); err != nil {
		return err
	}

	turn := c.turns.TurnNumber()
	evt := rules.NewEventWithAmount(rules.EventActionTaken, p.ID, "", turn)
	evt.Data = string(a.Kind)
	evt.Description = a.String()
	g.emit(evt)
	c.logger.Debug("action",
		zap.String("player", p.ID),
		zap.Int("turn", turn),
		zap.String("action", a.String()),
	)

	switch a.Kind {
	case ActionDraw:
		g.Draw(p, g.DrawValue(p))
	case ActionMeld:
		g.Meld(p, a.Card)
	case ActionAchieve:
		g.Achieve(p, g.AgeAchievement(a.Age))
	case ActionDogma:
		g.ResolveDogma(a.Card, p)
	}
	g.CheckSpecialAchievements()
	g.replay.RecordState(g.replayEntry(turn, p.ID, a.String()))

	ended, err := c.turns.Complete()
	if err != nil {
		return err
	}
	if ended {
		g.emit(rules.NewEventWithAmount(rules.EventTurnEnded, p.ID, "", turn))
		g.watchers.ResetWatchersByScope(rules.WatcherScopeTurn)
		if !g.Over() {
			g.emit(rules.NewEventWithAmount(rules.EventTurnStarted, c.turns.ActivePlayer(), "", c.turns.TurnNumber()))
		}
	}
	return nil
}
