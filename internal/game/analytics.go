package game

import (
	"time"

	"github.com/innovation-engine/innovation-go/internal/game/rules"
)

// gameAnalytics tracks metrics for a game, fed from the event bus.
type gameAnalytics struct {
	dogmasResolved int         // Dogma actions finished
	effectsInvoked int         // Effect bodies executed
	demandsInvoked int         // Of which demand effects
	sharesDetected int         // Dogma actions where an opponent's share changed the game
	bonusDraws     int         // Compensating draws granted
	cardsDrawn     int         // Every draw, including bonus draws
	optionsChosen  int         // Decisions answered by providers
	actionsPerTurn map[int]int // Actions taken per turn number
	gameStartTime  time.Time
	gameEndTime    time.Time
}

func newGameAnalytics() *gameAnalytics {
	return &gameAnalytics{
		actionsPerTurn: make(map[int]int),
		gameStartTime:  time.Now(),
	}
}

func (a *gameAnalytics) observe(evt rules.Event) {
	switch evt.Type {
	case rules.EventDogmaFinished:
		a.dogmasResolved++
	case rules.EventEffectResolving:
		a.effectsInvoked++
		if evt.Data == "demand" {
			a.demandsInvoked++
		}
	case rules.EventShareDetected:
		a.sharesDetected++
	case rules.EventShareBonus:
		a.bonusDraws++
	case rules.EventDraw:
		a.cardsDrawn++
	case rules.EventOptionChosen:
		a.optionsChosen++
	case rules.EventActionTaken:
		a.actionsPerTurn[evt.Amount]++
	case rules.EventGameOver:
		a.gameEndTime = evt.Timestamp
	}
}

// AnalyticsSummary returns the game's metrics.
func (g *Game) AnalyticsSummary() map[string]interface{} {
	a := g.analytics
	end := a.gameEndTime
	if end.IsZero() {
		end = time.Now()
	}

	totalActions := 0
	for _, n := range a.actionsPerTurn {
		totalActions += n
	}

	return map[string]interface{}{
		"dogmas_resolved":         a.dogmasResolved,
		"effects_invoked":         a.effectsInvoked,
		"demands_invoked":         a.demandsInvoked,
		"shares_detected":         a.sharesDetected,
		"bonus_draws":             a.bonusDraws,
		"cards_drawn":             a.cardsDrawn,
		"options_chosen":          a.optionsChosen,
		"turns":                   len(a.actionsPerTurn),
		"total_actions":           totalActions,
		"total_game_time_seconds": end.Sub(a.gameStartTime).Seconds(),
	}
}
