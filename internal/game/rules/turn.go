package rules

import (
	"errors"
	"fmt"
)

// Phase is where the turn controller is within a single action.
type Phase int

const (
	PhaseAwaitingAction Phase = iota
	PhaseDrawing
	PhaseMelding
	PhaseAchieving
	PhaseDogma
)

var phaseNames = map[Phase]string{
	PhaseAwaitingAction: "AWAITING_ACTION",
	PhaseDrawing:        "DRAWING",
	PhaseMelding:        "MELDING",
	PhaseAchieving:      "ACHIEVING",
	PhaseDogma:          "DOGMA",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

const (
	// ActionsPerTurn is the regular number of actions a player takes.
	ActionsPerTurn = 2
)

// ErrActionInProgress is returned when an action starts before the previous one completed.
var ErrActionInProgress = errors.New("an action is already in progress")

// ErrNoActionInProgress is returned when completing an action that never started.
var ErrNoActionInProgress = errors.New("no action in progress")

// TurnManager tracks the active player, the actions left this turn, and the
// current action phase.
type TurnManager struct {
	order            []string
	orderIndex       int
	turnNumber       int
	actionsRemaining int
	phase            Phase
}

// NewTurnManager creates a turn manager at turn 1 with the first player in order active.
func NewTurnManager(order []string) *TurnManager {
	tm := &TurnManager{
		order:      append([]string(nil), order...),
		turnNumber: 1,
		phase:      PhaseAwaitingAction,
	}
	tm.actionsRemaining = tm.actionsFor(tm.turnNumber)
	return tm
}

// actionsFor returns the action allowance for a turn. The opening turns get a
// single action: one opening turn with two or three players, two with four.
func (tm *TurnManager) actionsFor(turn int) int {
	opening := 1
	if len(tm.order) >= 4 {
		opening = 2
	}
	if turn <= opening {
		return 1
	}
	return ActionsPerTurn
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActivePlayer returns the player who currently has the turn.
func (tm *TurnManager) ActivePlayer() string {
	if len(tm.order) == 0 {
		return ""
	}
	return tm.order[tm.orderIndex]
}

// ActionsRemaining returns how many actions the active player has left.
func (tm *TurnManager) ActionsRemaining() int {
	return tm.actionsRemaining
}

// CurrentPhase returns the action phase in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return tm.phase
}

// Begin moves from AwaitingAction into the given action phase.
func (tm *TurnManager) Begin(phase Phase) error {
	if tm.phase != PhaseAwaitingAction {
		return fmt.Errorf("begin %s: %w", phase, ErrActionInProgress)
	}
	if phase == PhaseAwaitingAction {
		return fmt.Errorf("begin: %s is not an action phase", phase)
	}
	tm.phase = phase
	return nil
}

// Complete returns to AwaitingAction and consumes one action. When the turn's
// actions are exhausted the next player in order becomes active and Complete
// reports true.
func (tm *TurnManager) Complete() (bool, error) {
	if tm.phase == PhaseAwaitingAction {
		return false, ErrNoActionInProgress
	}
	tm.phase = PhaseAwaitingAction
	tm.actionsRemaining--
	if tm.actionsRemaining > 0 {
		return false, nil
	}
	tm.orderIndex = (tm.orderIndex + 1) % len(tm.order)
	tm.turnNumber++
	tm.actionsRemaining = tm.actionsFor(tm.turnNumber)
	return true, nil
}

// Abort returns to AwaitingAction without consuming the action.
func (tm *TurnManager) Abort() {
	tm.phase = PhaseAwaitingAction
}
