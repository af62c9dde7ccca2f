package board

import (
	"fmt"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
)

// Splay is the direction a stack is fanned out in.
type Splay int

const (
	SplayNone Splay = iota
	SplayLeft
	SplayRight
	SplayUp
)

var splayNames = map[Splay]string{
	SplayNone:  "none",
	SplayLeft:  "left",
	SplayRight: "right",
	SplayUp:    "up",
}

func (s Splay) String() string {
	if name, ok := splayNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SPLAY_%d", int(s))
}

// revealed lists the slots of each non-top card that a splay direction exposes.
// Left shows a single slot while right and up show two and three.
var revealed = map[Splay][]int{
	SplayLeft:  {3},
	SplayRight: {0, 1},
	SplayUp:    {1, 2, 3},
}

// Stack is a color pile on a player's board.
type Stack struct {
	Pile
	color cards.Color
	splay Splay
}

// NewStack creates an empty stack for a color.
func NewStack(name string, color cards.Color) *Stack {
	return &Stack{
		Pile:  *NewPile(name),
		color: color,
	}
}

// Color returns the stack color.
func (s *Stack) Color() cards.Color {
	return s.color
}

// Splay returns the current splay direction.
func (s *Stack) Splay() Splay {
	return s.splay
}

// PileTag implements snapshot.Tagged so that checksums cover the splay.
func (s *Stack) PileTag() string {
	if s.splay == SplayNone {
		return ""
	}
	return s.splay.String()
}

// SetSplay changes the splay direction. It is a no-op on stacks with fewer than two cards.
func (s *Stack) SetSplay(dir Splay) bool {
	if s.Len() < 2 {
		return false
	}
	if s.splay == dir {
		return false
	}
	s.splay = dir
	return true
}

// Remove deletes a card and drops the splay once a single card remains.
func (s *Stack) Remove(c *cards.Card) bool {
	if !s.Pile.Remove(c) {
		return false
	}
	s.normalize()
	return true
}

// PopTop removes the top card and drops the splay once a single card remains.
func (s *Stack) PopTop() (*cards.Card, bool) {
	c, ok := s.Pile.PopTop()
	if ok {
		s.normalize()
	}
	return c, ok
}

func (s *Stack) normalize() {
	if s.Len() < 2 {
		s.splay = SplayNone
	}
}

// IconsInStack counts the visible occurrences of icon on a stack.
func IconsInStack(s *Stack, icon cards.Icon) int {
	if s == nil || s.IsEmpty() {
		return 0
	}

	count := s.Top().Count(icon)
	if s.Len() < 2 || s.splay == SplayNone {
		return count
	}

	slots := revealed[s.splay]
	for _, c := range s.cards[1:] {
		for _, slot := range slots {
			if c.Icons[slot] == icon {
				count++
			}
		}
	}
	return count
}
