package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/innovation-engine/innovation-go/internal/game"
	"go.uber.org/zap"
)

// TurnLimitReason is the end reason recorded when a game hits its turn limit.
const TurnLimitReason = "turn limit reached"

// Runner errors.
var (
	// ErrNoLegalActions is returned when the active player has nothing to do.
	ErrNoLegalActions = errors.New("no legal actions")
	// ErrNoTurnLimit is returned for a non-positive turn limit.
	ErrNoTurnLimit = errors.New("turn limit must be positive")
)

// Result summarizes one finished game.
type Result struct {
	GameID   string
	Winner   string
	Reason   string
	Turns    int
	Actions  int
	Duration time.Duration
}

// Run drives a set-up game to its end with the given computer players, keyed
// by player ID. A game still running after maxTurns turns ends by score.
func Run(ctx context.Context, g *game.Game, players map[string]*Player, maxTurns int) (Result, error) {
	if maxTurns <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNoTurnLimit, maxTurns)
	}
	start := time.Now()
	logger := g.Logger()

	c, err := game.NewController(g)
	if err != nil {
		return Result{}, fmt.Errorf("start game %s: %w", g.ID(), err)
	}

	actions := 0
	for !g.Over() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if c.TurnNumber() > maxTurns {
			g.EndByScore(TurnLimitReason)
			break
		}

		active := c.ActivePlayer()
		ai, ok := players[active.ID]
		if !ok {
			return Result{}, fmt.Errorf("no computer player for %s", active.ID)
		}
		legal := g.LegalActions(active)
		if len(legal) == 0 {
			return Result{}, fmt.Errorf("%s: %w", active.ID, ErrNoLegalActions)
		}
		if err := c.Perform(active, ai.ChooseAction(legal)); err != nil {
			return Result{}, fmt.Errorf("turn %d: %w", c.TurnNumber(), err)
		}
		actions++
	}

	res := Result{
		GameID:   g.ID(),
		Reason:   g.Reason(),
		Turns:    c.TurnNumber(),
		Actions:  actions,
		Duration: time.Since(start),
	}
	if w := g.Winner(); w != nil {
		res.Winner = w.ID
	}
	logger.Info("game finished",
		zap.String("winner", res.Winner),
		zap.String("reason", res.Reason),
		zap.Int("turns", res.Turns),
		zap.Int("actions", res.Actions),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
