package game

import (
	"fmt"
	"sort"

	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"go.uber.org/zap"
)

// Special achievement names as they appear in the achievements catalog.
const (
	Monument = "Monument"
	Empire   = "Empire"
	World    = "World"
	Wonder   = "Wonder"
	Universe = "Universe"
)

// specialCheck reports whether a player currently meets a special achievement.
type specialCheck struct {
	name string
	met  func(g *Game, p *Player) bool
}

var specialChecks = []specialCheck{
	{Monument, func(g *Game, p *Player) bool {
		return g.tucks.Reached(p.ID) || g.scores.Reached(p.ID)
	}},
	{Empire, func(_ *Game, p *Player) bool {
		for _, icon := range cards.Icons {
			if IconsOnBoard(p, icon) < 3 {
				return false
			}
		}
		return true
	}},
	{World, func(_ *Game, p *Player) bool {
		return IconsOnBoard(p, cards.IconClock) >= 12
	}},
	{Wonder, func(_ *Game, p *Player) bool {
		for _, s := range p.Board.Stacks() {
			if s.IsEmpty() || (s.Splay() != board.SplayRight && s.Splay() != board.SplayUp) {
				return false
			}
		}
		return true
	}},
	{Universe, func(_ *Game, p *Player) bool {
		for _, s := range p.Board.Stacks() {
			if top := s.Top(); top == nil || top.Age < 8 {
				return false
			}
		}
		return true
	}},
}

// CheckSpecialAchievements awards every unclaimed special achievement whose
// condition a player meets, checking players in table order.
func (g *Game) CheckSpecialAchievements() {
	for _, check := range specialChecks {
		for _, p := range g.players {
			if g.halted() {
				return
			}
			if g.special.Get(check.name) == nil {
				break
			}
			if check.met(g, p) {
				g.ClaimSpecial(p, check.name)
				break
			}
		}
	}
}

// AgeAchievement returns the unclaimed age achievement of age, or nil.
func (g *Game) AgeAchievement(age int) *cards.Card {
	for _, c := range g.achievements.Cards() {
		if c.Age == age {
			return c
		}
	}
	return nil
}

// EligibleAchievements returns the ages p may achieve now: the achievement is
// unclaimed, p's score is at least five times the age, and p has a top card of
// at least that age.
func (g *Game) EligibleAchievements(p *Player) []int {
	score := g.ScoreTotal(p)
	highest := p.Board.HighestTop()
	var ages []int
	for _, c := range g.achievements.Cards() {
		if score >= 5*c.Age && highest >= c.Age {
			ages = append(ages, c.Age)
		}
	}
	sort.Ints(ages)
	return ages
}

// checkAchievementWin ends the game for the first player in table order who
// holds enough achievements. That player wins even when someone else's action
// triggered the check.
func (g *Game) checkAchievementWin() {
	for _, p := range g.players {
		if p.Achievements.Len() >= g.achievementsToWin {
			g.finish(p, fmt.Sprintf("%s reached %d achievements", p.Name, g.achievementsToWin))
			return
		}
	}
}

// EndByScore ends the game in favor of the highest score. Ties go to the player
// with more achievements, then to the earlier player in table order.
func (g *Game) EndByScore(reason string) {
	if g.halted() {
		return
	}
	var best *Player
	bestScore, bestAchievements := -1, -1
	for _, p := range g.players {
		score, achievements := g.ScoreTotal(p), p.Achievements.Len()
		if score > bestScore || (score == bestScore && achievements > bestAchievements) {
			best, bestScore, bestAchievements = p, score, achievements
		}
	}
	g.finish(best, reason)
}

func (g *Game) finish(winner *Player, reason string) {
	if g.halted() {
		return
	}
	g.state = StateFinished
	g.winner = winner
	g.reason = reason

	evt := rules.NewEvent(rules.EventGameOver, winner.ID, "")
	evt.Description = reason
	g.emit(evt)
	g.logger.Info("game over",
		zap.String("winner", winner.ID),
		zap.String("reason", reason),
	)
}
