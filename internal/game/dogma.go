package game

import (
	"strings"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"github.com/innovation-engine/innovation-go/internal/game/snapshot"
	"go.uber.org/zap"
)

// ExecutionContext is passed by value to every effect body. TurnPlayer and
// TurnCard stay fixed for the whole dogma action while ActivePlayer is the
// player the effect is currently resolving for.
type ExecutionContext struct {
	TurnPlayer   *Player
	TurnCard     *cards.Card
	ActivePlayer *Player
	ActiveCard   *cards.Card
	Action       *ActionState
}

// IsTurnPlayer reports whether the effect is resolving for the player who took the action.
func (ec ExecutionContext) IsTurnPlayer() bool {
	return ec.ActivePlayer == ec.TurnPlayer
}

// ActionState holds the facts shared between the effects of one dogma action,
// such as whether a demand made anyone transfer a card.
type ActionState struct {
	// Start is the game state when the dogma action began.
	Start snapshot.Snapshot

	SharingOccurred bool

	counts map[string]int
}

func newActionState(start snapshot.Snapshot) *ActionState {
	return &ActionState{Start: start, counts: make(map[string]int)}
}

// Add increments a named counter.
func (s *ActionState) Add(key string, n int) {
	s.counts[key] += n
}

// Count returns a named counter.
func (s *ActionState) Count(key string) int {
	return s.counts[key]
}

// ResolveDogma executes every effect of card for the players entitled to it.
// Demand effects run for the compelled players in share order. Non-demand
// effects run for the turn player and then each sharing player, and the first
// sharing player whose effect changed the game earns the turn player one bonus
// draw at the end of the action.
func (g *Game) ResolveDogma(card *cards.Card, turnPlayer *Player) {
	if g.halted() || card == nil {
		return
	}

	effects := g.registry.Effects(card)
	sharing := make([][]*Player, len(effects))
	compelled := make([][]*Player, len(effects))
	for i, e := range effects {
		sharing[i] = g.ResolveSharing(e, turnPlayer)
		compelled[i] = compelledBy(turnPlayer, sharing[i])
	}

	state := newActionState(g.Snapshot())
	g.sources = append(g.sources, card.ID)
	defer func() { g.sources = g.sources[:len(g.sources)-1] }()

	g.emit(rules.NewEventWithAmount(rules.EventDogmaStarted, turnPlayer.ID, string(card.ID), len(effects)))
	g.logger.Debug("dogma started",
		zap.String("player", turnPlayer.ID),
		zap.String("card", card.Name),
		zap.Int("effects", len(effects)),
	)

	for i, e := range effects {
		if e.Demand {
			for _, p := range compelled[i] {
				if g.halted() {
					break
				}
				g.invoke(e, ExecutionContext{
					TurnPlayer:   turnPlayer,
					TurnCard:     card,
					ActivePlayer: p,
					ActiveCard:   card,
					Action:       state,
				})
			}
			continue
		}

		for _, p := range sharing[i] {
			if g.halted() {
				break
			}
			before := g.Snapshot()
			g.invoke(e, ExecutionContext{
				TurnPlayer:   turnPlayer,
				TurnCard:     card,
				ActivePlayer: p,
				ActiveCard:   card,
				Action:       state,
			})
			if p == turnPlayer || state.SharingOccurred {
				continue
			}
			after := g.Snapshot()
			if !before.Equal(after) {
				state.SharingOccurred = true
				evt := rules.NewEvent(rules.EventShareDetected, p.ID, string(card.ID))
				evt.Description = strings.Join(before.Diff(after), ",")
				g.emit(evt)
			}
		}
	}

	if state.SharingOccurred && !g.halted() {
		g.emit(rules.NewEvent(rules.EventShareBonus, turnPlayer.ID, string(card.ID)))
		g.Draw(turnPlayer, g.DrawValue(turnPlayer))
	}

	evt := rules.NewEvent(rules.EventDogmaFinished, turnPlayer.ID, string(card.ID))
	if state.SharingOccurred {
		evt.Data = "shared"
	}
	g.emit(evt)
}

// ResolveForSelf executes only card's non-demand effects, for p alone. Nothing
// is shared, no snapshots are compared and no bonus draw is granted.
func (g *Game) ResolveForSelf(card *cards.Card, p *Player) {
	if g.halted() || card == nil {
		return
	}
	g.sources = append(g.sources, card.ID)
	defer func() { g.sources = g.sources[:len(g.sources)-1] }()

	state := &ActionState{counts: make(map[string]int)}
	for _, e := range g.registry.Effects(card) {
		if e.Demand {
			continue
		}
		if g.halted() {
			return
		}
		g.invoke(e, ExecutionContext{
			TurnPlayer:   p,
			TurnCard:     card,
			ActivePlayer: p,
			ActiveCard:   card,
			Action:       state,
		})
	}
}

func (g *Game) invoke(e Effect, ec ExecutionContext) {
	evt := rules.NewEventWithAmount(rules.EventEffectResolving, ec.ActivePlayer.ID, string(e.Key.Card), e.Key.Index)
	if e.Demand {
		evt.Data = "demand"
	}
	g.emit(evt)
	e.Body(g, ec)
}
