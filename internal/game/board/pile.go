package board

import (
	"github.com/innovation-engine/innovation-go/internal/game/cards"
)

// Pile is a named, ordered sequence of cards. Index 0 is the top.
type Pile struct {
	name  string
	cards []*cards.Card
}

// NewPile creates an empty pile.
func NewPile(name string) *Pile {
	return &Pile{
		name:  name,
		cards: make([]*cards.Card, 0, 8),
	}
}

// Name returns the pile's unique name.
func (p *Pile) Name() string {
	return p.name
}

// PileName implements snapshot.PileSource.
func (p *Pile) PileName() string {
	return p.name
}

// Len returns the number of cards in the pile.
func (p *Pile) Len() int {
	return len(p.cards)
}

// IsEmpty returns whether the pile holds no cards.
func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

// Top returns the top card, or nil when empty.
func (p *Pile) Top() *cards.Card {
	if len(p.cards) == 0 {
		return nil
	}
	return p.cards[0]
}

// Bottom returns the bottom card, or nil when empty.
func (p *Pile) Bottom() *cards.Card {
	if len(p.cards) == 0 {
		return nil
	}
	return p.cards[len(p.cards)-1]
}

// At returns the card at index i (0 = top).
func (p *Pile) At(i int) *cards.Card {
	if i < 0 || i >= len(p.cards) {
		return nil
	}
	return p.cards[i]
}

// Cards returns a copy of the pile contents, top first.
func (p *Pile) Cards() []*cards.Card {
	cpy := make([]*cards.Card, len(p.cards))
	copy(cpy, p.cards)
	return cpy
}

// CardIDs returns the card identifiers, top first. Implements snapshot.PileSource.
func (p *Pile) CardIDs() []string {
	ids := make([]string, len(p.cards))
	for i, c := range p.cards {
		ids[i] = string(c.ID)
	}
	return ids
}

// PushTop places a card on top of the pile.
func (p *Pile) PushTop(c *cards.Card) {
	p.cards = append(p.cards, nil)
	copy(p.cards[1:], p.cards)
	p.cards[0] = c
}

// PushBottom places a card at the bottom of the pile.
func (p *Pile) PushBottom(c *cards.Card) {
	p.cards = append(p.cards, c)
}

// PopTop removes and returns the top card.
func (p *Pile) PopTop() (*cards.Card, bool) {
	if len(p.cards) == 0 {
		return nil, false
	}
	c := p.cards[0]
	p.cards = append(p.cards[:0], p.cards[1:]...)
	return c, true
}

// Remove deletes a card from anywhere in the pile.
func (p *Pile) Remove(c *cards.Card) bool {
	for i, existing := range p.cards {
		if existing == c {
			p.cards = append(p.cards[:i], p.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the card is in the pile.
func (p *Pile) Contains(c *cards.Card) bool {
	for _, existing := range p.cards {
		if existing == c {
			return true
		}
	}
	return false
}

// Get finds a card by name.
func (p *Pile) Get(name string) *cards.Card {
	for _, c := range p.cards {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Filter returns the cards matching keep, top first.
func (p *Pile) Filter(keep func(*cards.Card) bool) []*cards.Card {
	var out []*cards.Card
	for _, c := range p.cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Highest returns every card sharing the highest age in the pile.
func (p *Pile) Highest() []*cards.Card {
	best := 0
	for _, c := range p.cards {
		if c.Age > best {
			best = c.Age
		}
	}
	return p.Filter(func(c *cards.Card) bool { return c.Age == best })
}

// Lowest returns every card sharing the lowest age in the pile.
func (p *Pile) Lowest() []*cards.Card {
	if len(p.cards) == 0 {
		return nil
	}
	best := p.cards[0].Age
	for _, c := range p.cards {
		if c.Age < best {
			best = c.Age
		}
	}
	return p.Filter(func(c *cards.Card) bool { return c.Age == best })
}

// Shuffle reorders the pile using the provided swap-based shuffler, e.g. rand.Shuffle.
func (p *Pile) Shuffle(shuffle func(n int, swap func(i, j int))) {
	shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}
