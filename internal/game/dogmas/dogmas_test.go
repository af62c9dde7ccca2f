package dogmas

import (
	"testing"

	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCoversBundledCatalog(t *testing.T) {
	catalog := loadCatalog(t)
	reg := NewRegistry()
	require.NoError(t, reg.Validate(catalog))

	texts := 0
	for _, c := range catalog {
		texts += len(c.Texts)
	}
	assert.Equal(t, texts, reg.Len())
}

func TestOarsDemandSkipsFallbackDraw(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Oars")
	f.give(t, f.p2.Hand, "Sailing")

	f.g.ResolveDogma(f.card(t, "Oars"), f.p1)

	assert.True(t, f.p1.Score.Contains(f.card(t, "Sailing")))
	assert.Equal(t, 1, f.p2.Hand.Len(), "compelled player draws after transferring")
	assert.Equal(t, 0, f.p1.Hand.Len(), "no fallback draw once a card moved")
}

func TestOarsFallbackDrawWhenNothingMoved(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Oars")
	f.give(t, f.p2.Hand, "Agriculture")

	f.g.ResolveDogma(f.card(t, "Oars"), f.p1)

	assert.Equal(t, 0, f.p1.Score.Len())
	assert.Equal(t, 1, f.p2.Hand.Len())
	assert.Equal(t, 1, f.p1.Hand.Len())
}

func TestArcheryTakesHighestCard(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Archery")
	f.give(t, f.p2.Hand, "Calendar")

	f.g.ResolveDogma(f.card(t, "Archery"), f.p1)

	assert.True(t, f.p1.Hand.Contains(f.card(t, "Calendar")))
	assert.Equal(t, 1, f.p2.Hand.Len())
	assert.Equal(t, 1, f.p2.Hand.Top().Age)
}

func TestCityStatesNeedsFourCastles(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "City States")
	f.meld(t, f.p2, "Metalworking", "Domestication")

	f.g.ResolveDogma(f.card(t, "City States"), f.p1)

	assert.Same(t, f.card(t, "Metalworking"), f.p1.Board.Stack(cards.ColorRed).Top())
	assert.Equal(t, 1, f.p2.Hand.Len())

	f2 := newFixture(t, nil, nil)
	f2.meld(t, f2.p1, "City States")
	f2.meld(t, f2.p2, "Metalworking")
	f2.g.ResolveDogma(f2.card(t, "City States"), f2.p1)
	assert.Same(t, f2.card(t, "Metalworking"), f2.p2.Board.Stack(cards.ColorRed).Top(), "three castles are not enough")
}

func TestAgricultureSharedChangeEarnsBonus(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Agriculture")
	f.meld(t, f.p2, "Pottery")
	f.give(t, f.p2.Hand, "Writing")

	f.g.ResolveDogma(f.card(t, "Agriculture"), f.p1)

	require.Equal(t, 1, f.p2.Score.Len())
	assert.Equal(t, 2, f.p2.Score.Top().Age)
	assert.Equal(t, 1, f.count(rules.EventShareDetected))
	assert.Equal(t, 1, f.count(rules.EventShareBonus))
	assert.Equal(t, 1, f.p1.Hand.Len(), "turn player draws the bonus")
}

func TestCanalBuildingExchangesHighestCards(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Canal Building")
	f.give(t, f.p1.Hand, "Writing", "Calendar")
	f.give(t, f.p1.Score, "Sailing", "Oars")

	f.g.ResolveDogma(f.card(t, "Canal Building"), f.p1)

	assert.ElementsMatch(t, []string{"Calendar"}, f.p1.Score.CardIDs())
	assert.ElementsMatch(t, []string{"Writing", "Sailing", "Oars"}, f.p1.Hand.CardIDs())
}

func TestMonotheismDemandThenTuck(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Monotheism")
	f.meld(t, f.p2, "Writing")

	f.g.ResolveDogma(f.card(t, "Monotheism"), f.p1)

	assert.True(t, f.p1.Score.Contains(f.card(t, "Writing")))
	assert.Equal(t, 1, boardSize(f.p2), "compelled player tucks a 1")
	assert.Equal(t, 2, boardSize(f.p1), "turn player tucks a 1")
	assert.Equal(t, 2, f.count(rules.EventTuck))
}

func TestMasonryClaimsMonument(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Masonry")
	f.give(t, f.p1.Hand, "Archery", "Domestication", "Metalworking", "Oars", "Writing")

	f.g.ResolveForSelf(f.card(t, "Masonry"), f.p1)

	assert.Equal(t, []string{"Writing"}, f.p1.Hand.CardIDs(), "cards without castles stay in hand")
	assert.NotNil(t, f.p1.Achievements.Get(game.Monument))
	assert.Nil(t, f.g.SpecialAchievements().Get(game.Monument))
}

func TestMasonryBelowFourMeldsClaimsNothing(t *testing.T) {
	f := newFixture(t, nil, nil, picks(3))
	f.meld(t, f.p1, "Masonry")
	f.give(t, f.p1.Hand, "Archery", "Domestication", "Metalworking", "Oars")

	f.g.ResolveForSelf(f.card(t, "Masonry"), f.p1)

	assert.Equal(t, 1, f.p1.Hand.Len())
	assert.Equal(t, 0, f.p1.Achievements.Len())
}

func TestMetalworkingRepeatsOnCastles(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Metalworking")
	f.give(t, f.g.Supply(1), "Agriculture", "Archery", "Oars")

	f.g.ResolveForSelf(f.card(t, "Metalworking"), f.p1)

	assert.ElementsMatch(t, []string{"Oars", "Archery"}, f.p1.Score.CardIDs())
	assert.Equal(t, []string{"Agriculture"}, f.p1.Hand.CardIDs())
	assert.Equal(t, 3, f.count(rules.EventReveal))
}

func TestCodeOfLawsTucksAndSplays(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Code of Laws")
	f.give(t, f.p1.Hand, "Mysticism")

	f.g.ResolveForSelf(f.card(t, "Code of Laws"), f.p1)

	purple := f.p1.Board.Stack(cards.ColorPurple)
	assert.Equal(t, 2, purple.Len())
	assert.Same(t, f.card(t, "Mysticism"), purple.Bottom())
	assert.Equal(t, board.SplayLeft, purple.Splay())

	passing := newFixture(t, nil, nil, lastOption)
	passing.meld(t, passing.p1, "Code of Laws")
	passing.give(t, passing.p1.Hand, "Mysticism")
	passing.g.ResolveForSelf(passing.card(t, "Code of Laws"), passing.p1)
	assert.Equal(t, 1, passing.p1.Hand.Len())
}

func TestPotteryScoresReturnedCount(t *testing.T) {
	f := newFixture(t, nil, nil, picks(2))
	f.meld(t, f.p1, "Pottery")
	f.give(t, f.p1.Hand, "Writing", "Sailing", "Oars")

	f.g.ResolveForSelf(f.card(t, "Pottery"), f.p1)

	require.Equal(t, 1, f.p1.Score.Len())
	assert.Equal(t, 2, f.p1.Score.Top().Age)
	assert.Equal(t, 2, f.p1.Hand.Len(), "one kept plus the draw from the second effect")
	assert.Equal(t, 2, f.count(rules.EventReturn))
}

func TestMapmakingScoresWhenDemandTransferred(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Mapmaking")
	f.give(t, f.p2.Score, "Writing")

	f.g.ResolveDogma(f.card(t, "Mapmaking"), f.p1)

	assert.True(t, f.p1.Score.Contains(f.card(t, "Writing")))
	assert.Equal(t, 2, f.p1.Score.Len())
	assert.Equal(t, 0, f.p2.Score.Len())
}

func TestFermentingDrawsPerTwoLeaves(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Fermenting", "Pottery")
	require.Equal(t, 5, game.IconsOnBoard(f.p1, cards.IconLeaf))

	f.g.ResolveForSelf(f.card(t, "Fermenting"), f.p1)

	require.Equal(t, 2, f.p1.Hand.Len())
	for _, c := range f.p1.Hand.Cards() {
		assert.Equal(t, 2, c.Age)
	}
}

func TestConstructionClaimsEmpireForOnlyFullBoard(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Construction", "Writing", "Sailing", "Mysticism", "Agriculture")

	f.g.ResolveDogma(f.card(t, "Construction"), f.p1)

	assert.NotNil(t, f.p1.Achievements.Get(game.Empire))
	assert.Equal(t, 1, f.p2.Hand.Len(), "compelled player still draws a 2")
}

func TestRoadBuildingSwapsRedForGreen(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Road Building")
	f.meld(t, f.p2, "Clothing")
	f.give(t, f.p1.Hand, "Agriculture", "Oars")

	f.g.ResolveForSelf(f.card(t, "Road Building"), f.p1)

	assert.Same(t, f.card(t, "Oars"), f.p2.Board.Stack(cards.ColorRed).Top())
	assert.Same(t, f.card(t, "Clothing"), f.p1.Board.Stack(cards.ColorGreen).Top())
	assert.Same(t, f.card(t, "Agriculture"), f.p1.Board.Stack(cards.ColorYellow).Top())
	assert.False(t, f.p2.Board.HasColor(cards.ColorGreen))
}

func TestPhilosophyOptionalEffects(t *testing.T) {
	f := newFixture(t, nil, nil, lastOption)
	f.meld(t, f.p1, "Philosophy", "Mysticism")
	f.give(t, f.p1.Hand, "Writing")

	f.g.ResolveForSelf(f.card(t, "Philosophy"), f.p1)
	assert.Equal(t, board.SplayNone, f.p1.Board.Stack(cards.ColorPurple).Splay())
	assert.Equal(t, 0, f.p1.Score.Len())

	f = newFixture(t, nil, nil)
	f.meld(t, f.p1, "Philosophy", "Mysticism")
	f.give(t, f.p1.Hand, "Writing")

	f.g.ResolveForSelf(f.card(t, "Philosophy"), f.p1)
	assert.Equal(t, board.SplayLeft, f.p1.Board.Stack(cards.ColorPurple).Splay())
	assert.True(t, f.p1.Score.Contains(f.card(t, "Writing")))
}

func TestComputersRunsMeldedCardForSelfOnly(t *testing.T) {
	six := &cards.Card{
		ID:         "Relay Station",
		Name:       "Relay Station",
		Color:      cards.ColorRed,
		Age:        6,
		EffectType: cards.IconClock,
		Icons:      [4]cards.Icon{cards.IconClock, cards.IconClock, cards.IconClock, cards.IconBlank},
		Texts:      []string{"I demand you draw a 1!", "Draw a 2."},
	}
	var ran []string
	reg := NewRegistry()
	reg.Register("Relay Station", 0, true, func(*game.Game, game.ExecutionContext) {
		ran = append(ran, "demand")
	})
	reg.Register("Relay Station", 1, false, func(_ *game.Game, ec game.ExecutionContext) {
		ran = append(ran, ec.ActivePlayer.ID)
	})

	f := newFixture(t, reg, []*cards.Card{six})
	f.meld(t, f.p1, "Computers")

	f.g.ResolveDogma(f.card(t, "Computers"), f.p1)

	assert.Same(t, six, f.p1.Board.Stack(cards.ColorRed).Top())
	assert.Equal(t, []string{"p1"}, ran)
	assert.Equal(t, 0, f.count(rules.EventShareDetected))
}

func TestComputersEndsGameWhenSupplyIsExhausted(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.meld(t, f.p1, "Computers")

	f.g.ResolveDogma(f.card(t, "Computers"), f.p1)

	assert.True(t, f.g.Over())
	assert.Equal(t, 1, f.count(rules.EventEmptyDraw))
}
