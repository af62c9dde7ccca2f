package game

import (
	"errors"
	"fmt"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"go.uber.org/zap"
)

const (
	// openingHand is the number of age 1 cards dealt to each player.
	openingHand = 2
	// highestAchievementAge is the oldest age set aside as an achievement.
	highestAchievementAge = 9
)

// ErrAlreadySetUp is returned when Setup runs twice.
var ErrAlreadySetUp = errors.New("game already set up")

// Setup shuffles the age piles, sets aside one card of each age 1-9 as an
// achievement (skipping empty ages), deals two age 1 cards to each player and has every player meld
// one of them. The player whose melded card comes first alphabetically goes first.
func (g *Game) Setup() error {
	if g.state != StateSetup {
		return ErrAlreadySetUp
	}

	for age := cards.MinAge; age <= cards.MaxAge; age++ {
		g.Shuffle(g.supply[age])
	}
	if need := 1 + openingHand*len(g.players); g.supply[cards.MinAge].Len() < need {
		return fmt.Errorf("%w: age %d pile holds %d cards, need %d", ErrInvalidConfig, cards.MinAge, g.supply[cards.MinAge].Len(), need)
	}
	for age := cards.MinAge; age <= highestAchievementAge; age++ {
		// Partial catalogs leave some ages without an achievement.
		c, ok := g.supply[age].PopTop()
		if !ok {
			g.logger.Warn("no achievement set aside", zap.Int("age", age))
			continue
		}
		g.achievements.PushBottom(c)
		evt := rules.NewMoveEvent(rules.EventSetAside, "", string(c.ID), g.supply[age].Name(), g.achievements.Name())
		evt.Amount = age
		g.emit(evt)
	}

	for _, p := range g.players {
		for i := 0; i < openingHand; i++ {
			g.Draw(p, cards.MinAge)
		}
	}

	melded := make(map[*Player]*cards.Card, len(g.players))
	for _, p := range g.players {
		opts := make([]options.Option, 0, p.Hand.Len())
		for _, c := range p.Hand.Cards() {
			opts = append(opts, &options.MeldCard{Card: c})
		}
		chosen := g.Choose(p, "choose your opening meld", options.Build(true, opts...))
		if meld, ok := chosen.(*options.MeldCard); ok {
			melded[p] = meld.Card
		}
	}

	// Everyone chooses before anyone melds.
	for _, p := range g.players {
		c := melded[p]
		if c == nil {
			continue
		}
		g.Meld(p, c)
		if g.first == nil || c.Name < melded[g.first].Name {
			g.first = p
		}
	}
	if g.first == nil {
		g.first = g.players[0]
	}

	g.state = StateInProgress
	g.replay.RecordState(g.replayEntry(0, "", "setup"))
	g.logger.Info("game set up",
		zap.Int("players", len(g.players)),
		zap.String("first_player", g.first.ID),
		zap.Int("achievements_to_win", g.achievementsToWin),
	)
	return nil
}

// TurnOrder returns the player IDs in table order starting with the first player.
func (g *Game) TurnOrder() []string {
	start := 0
	for i, p := range g.players {
		if p == g.first {
			start = i
		}
	}
	order := make([]string, 0, len(g.players))
	for i := range g.players {
		order = append(order, g.players[(start+i)%len(g.players)].ID)
	}
	return order
}
