package board

import (
	"github.com/innovation-engine/innovation-go/internal/game/cards"
)

// Container is anything a card can be removed from: plain piles and stacks.
type Container interface {
	PileName() string
	CardIDs() []string
	Len() int
	Contains(c *cards.Card) bool
	Remove(c *cards.Card) bool
}

// Board holds one stack per color.
type Board struct {
	stacks [5]*Stack
}

// NewBoard creates the five empty stacks for an owner. Stack names are "<owner>/<color>".
func NewBoard(owner string) *Board {
	b := &Board{}
	for _, color := range cards.Colors {
		b.stacks[color] = NewStack(owner+"/"+color.String(), color)
	}
	return b
}

// Stack returns the stack for a color, or nil for ColorNone.
func (b *Board) Stack(color cards.Color) *Stack {
	if color < 0 || int(color) >= len(b.stacks) {
		return nil
	}
	return b.stacks[color]
}

// Stacks returns the five stacks in color order.
func (b *Board) Stacks() []*Stack {
	out := make([]*Stack, len(b.stacks))
	copy(out, b.stacks[:])
	return out
}

// TopCards returns the top card of every non-empty stack in color order.
func (b *Board) TopCards() []*cards.Card {
	var out []*cards.Card
	for _, s := range b.stacks {
		if top := s.Top(); top != nil {
			out = append(out, top)
		}
	}
	return out
}

// HighestTop returns the highest age among top cards, or 0 for an empty board.
func (b *Board) HighestTop() int {
	best := 0
	for _, c := range b.TopCards() {
		if c.Age > best {
			best = c.Age
		}
	}
	return best
}

// HasColor reports whether the color's stack holds any card.
func (b *Board) HasColor(color cards.Color) bool {
	s := b.Stack(color)
	return s != nil && !s.IsEmpty()
}

// Icons sums IconsInStack over all five stacks.
func (b *Board) Icons(icon cards.Icon) int {
	total := 0
	for _, s := range b.stacks {
		total += IconsInStack(s, icon)
	}
	return total
}

// Containers returns the stacks as removable containers.
func (b *Board) Containers() []Container {
	out := make([]Container, len(b.stacks))
	for i, s := range b.stacks {
		out[i] = s
	}
	return out
}
