// Package ai provides computer players: a seeded DecisionProvider for effect
// choices and an action picker for the controller.
package ai

import (
	"fmt"
	"math/rand"

	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/options"
	"go.uber.org/zap"
)

// Strategy selects how a computer player picks among legal choices.
type Strategy uint8

const (
	// Random picks uniformly.
	Random Strategy = iota
	// Greedy never passes when it has an alternative and prefers achieving
	// over dogma over melding over drawing.
	Greedy
)

func (s Strategy) String() string {
	switch s {
	case Random:
		return "random"
	case Greedy:
		return "greedy"
	default:
		return fmt.Sprintf("STRATEGY_%d", uint8(s))
	}
}

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "random", "":
		return Random, nil
	case "greedy":
		return Greedy, nil
	default:
		return Random, fmt.Errorf("unknown ai strategy %q", name)
	}
}

var actionRank = map[game.ActionKind]int{
	game.ActionAchieve: 0,
	game.ActionDogma:   1,
	game.ActionMeld:    2,
	game.ActionDraw:    3,
}

// Player is a computer seat. It is not safe for concurrent use; each game
// drives its players from one goroutine.
type Player struct {
	id       string
	strategy Strategy
	rng      *rand.Rand
	logger   *zap.Logger
}

// NewPlayer creates a computer player whose choices are reproducible for a seed.
func NewPlayer(id string, strategy Strategy, seed int64, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		id:       id,
		strategy: strategy,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   logger.With(zap.String("ai", id), zap.Stringer("strategy", strategy)),
	}
}

// Select implements options.DecisionProvider.
func (p *Player) Select(req options.Request) options.Option {
	if p.strategy == Greedy {
		candidates := make([]options.Option, 0, len(req.Options))
		for _, o := range req.Options {
			if !options.IsPass(o) {
				candidates = append(candidates, o)
			}
		}
		if len(candidates) > 0 {
			return candidates[p.rng.Intn(len(candidates))]
		}
	}
	return req.Options[p.rng.Intn(len(req.Options))]
}

// ChooseAction picks one of the legal actions. actions must not be empty.
func (p *Player) ChooseAction(actions []game.Action) game.Action {
	if p.strategy == Random {
		return actions[p.rng.Intn(len(actions))]
	}

	best := actions[:0:0]
	bestRank := len(actionRank)
	for _, a := range actions {
		switch rank := actionRank[a.Kind]; {
		case rank < bestRank:
			best, bestRank = append(best[:0], a), rank
		case rank == bestRank:
			best = append(best, a)
		}
	}
	choice := best[p.rng.Intn(len(best))]
	p.logger.Debug("action chosen", zap.Stringer("action", choice), zap.Int("legal", len(actions)))
	return choice
}
