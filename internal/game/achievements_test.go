package game

import (
	"testing"

	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAchievementsToWin(t *testing.T) {
	assert.Equal(t, 6, DefaultAchievementsToWin(2))
	assert.Equal(t, 5, DefaultAchievementsToWin(3))
	assert.Equal(t, 4, DefaultAchievementsToWin(4))
}

func TestAchievementWinGoesToFirstPlayerInTableOrder(t *testing.T) {
	f := newFixture(t, 2, nil)
	p1, p2 := f.players[0], f.players[1]
	f.g.achievementsToWin = 2

	// Both players end up holding two achievements when p2's achieve is checked.
	for _, age := range []int{5, 6} {
		c, _ := f.g.Supply(age).PopTop()
		p1.Achievements.PushTop(c)
	}
	c, _ := f.g.Supply(7).PopTop()
	p2.Achievements.PushTop(c)
	require.False(t, f.g.Over())

	f.g.Achieve(p2, f.g.Supply(8).Top())

	assert.True(t, f.g.Over())
	assert.Same(t, p1, f.g.Winner(), "first satisfying player in table order wins")
}

func TestAchieveBelowThresholdDoesNotEndGame(t *testing.T) {
	f := newFixture(t, 2, nil)
	p1 := f.players[0]
	f.g.Achieve(p1, f.g.Supply(1).Top())
	assert.False(t, f.g.Over())
	assert.Equal(t, 1, p1.Achievements.Len())
}

func TestEndByScoreTieBreaks(t *testing.T) {
	t.Run("highest score", func(t *testing.T) {
		f := newFixture(t, 3, nil)
		f.g.DrawAndScore(f.players[1], 2)
		f.g.DrawAndScore(f.players[2], 1)
		f.g.EndByScore("test")
		assert.Same(t, f.players[1], f.g.Winner())
		assert.Equal(t, "test", f.g.Reason())
	})

	t.Run("achievements break score ties", func(t *testing.T) {
		f := newFixture(t, 3, nil)
		f.g.DrawAndScore(f.players[0], 2)
		f.g.DrawAndScore(f.players[2], 2)
		f.g.Achieve(f.players[2], f.g.Supply(1).Top())
		f.g.EndByScore("test")
		assert.Same(t, f.players[2], f.g.Winner())
	})

	t.Run("table order breaks full ties", func(t *testing.T) {
		f := newFixture(t, 3, nil)
		f.g.DrawAndScore(f.players[1], 3)
		f.g.DrawAndScore(f.players[2], 3)
		f.g.EndByScore("test")
		assert.Same(t, f.players[1], f.g.Winner())
	})
}

func TestEligibleAchievements(t *testing.T) {
	f := newFixture(t, 2, nil)
	p1 := f.players[0]
	for age := 1; age <= 3; age++ {
		f.g.Transfer(f.g.Supply(age).Top(), f.g.AgeAchievements())
	}
	assert.Empty(t, f.g.EligibleAchievements(p1))

	f.g.Meld(p1, f.g.Supply(2).Top())
	f.g.DrawAndScore(p1, 5)
	assert.Equal(t, []int{1}, f.g.EligibleAchievements(p1), "score 5 covers age 1 only")

	f.g.DrawAndScore(p1, 5)
	assert.Equal(t, []int{1, 2}, f.g.EligibleAchievements(p1), "age 3 needs a score of 15 and a top card of 3")

	require.NotNil(t, f.g.AgeAchievement(2))
	assert.Nil(t, f.g.AgeAchievement(9))
}

func TestMonumentFromSixTucksInOneTurn(t *testing.T) {
	f := newFixture(t, 2, nil)
	p1, p2 := f.players[0], f.players[1]

	for i := 0; i < monumentThreshold-1; i++ {
		f.g.DrawAndTuck(p1, 3)
	}
	f.g.CheckSpecialAchievements()
	assert.NotNil(t, f.g.SpecialAchievements().Get(Monument))

	f.g.DrawAndTuck(p1, 3)
	f.g.DrawAndScore(p2, 1)
	f.g.CheckSpecialAchievements()
	assert.Nil(t, f.g.SpecialAchievements().Get(Monument))
	assert.NotNil(t, p1.Achievements.Get(Monument))
	assert.Nil(t, p2.Achievements.Get(Monument))
}

func TestWonderAndUniverse(t *testing.T) {
	f := newFixture(t, 2, nil)
	p2 := f.players[1]

	for _, color := range cards.Colors {
		for _, age := range []int{8, 9} {
			c := f.g.Supply(age).Filter(func(c *cards.Card) bool { return c.Color == color })[0]
			f.g.Meld(p2, c)
		}
		require.True(t, f.g.Splay(p2, color, board.SplayUp))
	}

	f.g.CheckSpecialAchievements()

	assert.NotNil(t, p2.Achievements.Get(Wonder))
	assert.NotNil(t, p2.Achievements.Get(Universe))
	assert.Nil(t, p2.Achievements.Get(Empire), "filler cards show no icons")
	assert.Equal(t, 3, f.g.SpecialAchievements().Len())
}
