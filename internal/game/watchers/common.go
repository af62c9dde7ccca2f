package watchers

import (
	"github.com/innovation-engine/innovation-go/internal/game/rules"
)

// CardsMovedWatcher counts, per player, the events of one type seen this turn.
type CardsMovedWatcher struct {
	*rules.BaseWatcher
	eventType rules.EventType
	threshold int
	counts    map[string]int // playerID -> events this turn
}

func newCardsMovedWatcher(key string, eventType rules.EventType, threshold int) *CardsMovedWatcher {
	return &CardsMovedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeTurn, key),
		eventType:   eventType,
		threshold:   threshold,
		counts:      make(map[string]int),
	}
}

// NewTuckWatcher tracks cards tucked per player this turn. Its condition is met
// once any player reaches threshold tucks.
func NewTuckWatcher(threshold int) *CardsMovedWatcher {
	return newCardsMovedWatcher("TuckWatcher", rules.EventTuck, threshold)
}

// NewScoreWatcher tracks cards scored per player this turn.
func NewScoreWatcher(threshold int) *CardsMovedWatcher {
	return newCardsMovedWatcher("ScoreWatcher", rules.EventScore, threshold)
}

// Watch implements the Watcher interface.
func (w *CardsMovedWatcher) Watch(event rules.Event) {
	if event.Type != w.eventType || event.PlayerID == "" {
		return
	}
	w.counts[event.PlayerID]++
	if w.threshold > 0 && w.counts[event.PlayerID] >= w.threshold {
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *CardsMovedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.counts = make(map[string]int)
}

// GetCount returns how many matching events a player had this turn.
func (w *CardsMovedWatcher) GetCount(playerID string) int {
	return w.counts[playerID]
}

// Reached reports whether a player hit the threshold this turn.
func (w *CardsMovedWatcher) Reached(playerID string) bool {
	return w.threshold > 0 && w.counts[playerID] >= w.threshold
}
