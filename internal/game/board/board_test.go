package board

import (
	"testing"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(name string, icons ...cards.Icon) *cards.Card {
	c := &cards.Card{ID: cards.CardID(name), Name: name, Color: cards.ColorRed, Age: 1, EffectType: cards.IconCastle}
	for i := range c.Icons {
		c.Icons[i] = cards.IconBlank
	}
	copy(c.Icons[:], icons)
	return c
}

var (
	castle = cards.IconCastle
	crown  = cards.IconCrown
	leaf   = cards.IconLeaf
	blank  = cards.IconBlank
)

func stackOf(splay Splay, cs ...*cards.Card) *Stack {
	s := NewStack("p/red", cards.ColorRed)
	for i := len(cs) - 1; i >= 0; i-- {
		s.PushTop(cs[i])
	}
	s.SetSplay(splay)
	return s
}

func TestIconsInStack(t *testing.T) {
	top := card("top", castle, castle, blank, crown)
	second := card("second", castle, castle, castle, castle)

	tests := []struct {
		name  string
		stack *Stack
		want  int
	}{
		{"empty stack", NewStack("p/red", cards.ColorRed), 0},
		{"unsplayed counts top only", stackOf(SplayNone, top, second), 2},
		{"left adds slot 3", stackOf(SplayLeft, top, second), 3},
		{"right adds slots 0 and 1", stackOf(SplayRight, top, second), 4},
		{"up adds slots 1 to 3", stackOf(SplayUp, top, second), 5},
		{"single card ignores splay request", stackOf(SplayUp, top), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IconsInStack(tt.stack, castle))
		})
	}
}

func TestIconsInStackRevealedSlotsAreExact(t *testing.T) {
	top := card("top", blank, blank, blank, blank)
	// Each slot of the second card shows a different icon so only the revealed slots count.
	second := card("second", castle, crown, leaf, castle)

	left := stackOf(SplayLeft, top, second)
	assert.Equal(t, 1, IconsInStack(left, castle))
	assert.Equal(t, 0, IconsInStack(left, crown))

	right := stackOf(SplayRight, top, second)
	assert.Equal(t, 1, IconsInStack(right, castle))
	assert.Equal(t, 1, IconsInStack(right, crown))
	assert.Equal(t, 0, IconsInStack(right, leaf))

	up := stackOf(SplayUp, top, second)
	assert.Equal(t, 1, IconsInStack(up, castle))
	assert.Equal(t, 1, IconsInStack(up, crown))
	assert.Equal(t, 1, IconsInStack(up, leaf))
}

func TestIconsInStackThreeCardsLeft(t *testing.T) {
	top := card("top", castle, blank, castle, crown)
	second := card("second", blank, blank, blank, castle)
	third := card("third", crown, crown, crown, castle)

	s := stackOf(SplayLeft, top, second, third)
	assert.Equal(t, top.Count(castle)+2, IconsInStack(s, castle))
}

func TestSplayIsNoOpOnSingleCard(t *testing.T) {
	s := stackOf(SplayNone, card("only"))
	assert.False(t, s.SetSplay(SplayRight))
	assert.Equal(t, SplayNone, s.Splay())
}

func TestSplayResetsWhenStackShrinks(t *testing.T) {
	a, b := card("a"), card("b")
	s := stackOf(SplayLeft, a, b)
	require.Equal(t, SplayLeft, s.Splay())

	require.True(t, s.Remove(a))
	assert.Equal(t, SplayNone, s.Splay())
}

func TestPileOrdering(t *testing.T) {
	p := NewPile("1")
	a, b, c := card("a"), card("b"), card("c")
	p.PushTop(a)
	p.PushTop(b)
	p.PushBottom(c)

	assert.Equal(t, []string{"b", "a", "c"}, p.CardIDs())
	assert.Equal(t, b, p.Top())
	assert.Equal(t, c, p.Bottom())

	top, ok := p.PopTop()
	require.True(t, ok)
	assert.Equal(t, b, top)
	assert.True(t, p.Remove(c))
	assert.False(t, p.Remove(c))
	assert.Equal(t, []string{"a"}, p.CardIDs())
}

func TestPileHighestAndLowest(t *testing.T) {
	p := NewPile("hand")
	one := card("one")
	two := card("two")
	two.Age = 2
	otherTwo := card("other-two")
	otherTwo.Age = 2
	p.PushTop(one)
	p.PushTop(two)
	p.PushTop(otherTwo)

	assert.ElementsMatch(t, []*cards.Card{two, otherTwo}, p.Highest())
	assert.Equal(t, []*cards.Card{one}, p.Lowest())
}

func TestBoardIcons(t *testing.T) {
	b := NewBoard("alice")
	red := card("red", castle, castle, blank, castle)
	blue := card("blue", castle, leaf, leaf, blank)
	blue.Color = cards.ColorBlue
	b.Stack(cards.ColorRed).PushTop(red)
	b.Stack(cards.ColorBlue).PushTop(blue)

	assert.Equal(t, 4, b.Icons(castle))
	assert.Equal(t, 2, b.Icons(leaf))
	assert.Equal(t, 1, b.HighestTop())
	assert.True(t, b.HasColor(cards.ColorBlue))
	assert.False(t, b.HasColor(cards.ColorGreen))
	assert.Len(t, b.TopCards(), 2)
	assert.Equal(t, "alice/red", b.Stack(cards.ColorRed).Name())
	assert.Nil(t, b.Stack(cards.ColorNone))
}
