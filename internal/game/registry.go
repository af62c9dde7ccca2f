package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
)

// ErrIncompleteRegistry is returned when the registered effects do not match the catalog.
var ErrIncompleteRegistry = errors.New("effect registry does not match catalog")

const demandPrefix = "I demand"

// EffectKey identifies one effect: the card and its position on the card.
type EffectKey struct {
	Card  cards.CardID
	Index int
}

func (k EffectKey) String() string {
	return fmt.Sprintf("%s#%d", k.Card, k.Index)
}

// EffectBody is the behavior of one effect. It receives the game and the
// context it runs in and mutates the game only through primitives and offers.
type EffectBody func(g *Game, ec ExecutionContext)

// Effect is an immutable registered effect.
type Effect struct {
	Key    EffectKey
	Icon   cards.Icon
	Demand bool
	Body   EffectBody
}

// Registry maps effect keys to behavior.
type Registry struct {
	effects map[EffectKey]Effect
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{effects: make(map[EffectKey]Effect)}
}

// Register binds body to a card's effect. The share icon is the card's dogma icon.
func (r *Registry) Register(card cards.CardID, index int, demand bool, body EffectBody) {
	r.RegisterIcon(card, index, cards.IconNone, demand, body)
}

// RegisterIcon binds body to a card's effect with an explicit share icon.
// Registering the same key twice panics.
func (r *Registry) RegisterIcon(card cards.CardID, index int, icon cards.Icon, demand bool, body EffectBody) {
	key := EffectKey{Card: card, Index: index}
	if body == nil {
		panic(fmt.Sprintf("game: effect %s registered without a body", key))
	}
	if _, dup := r.effects[key]; dup {
		panic(fmt.Sprintf("game: effect %s registered twice", key))
	}
	r.effects[key] = Effect{Key: key, Icon: icon, Demand: demand, Body: body}
}

// Len returns the number of registered effects.
func (r *Registry) Len() int {
	return len(r.effects)
}

// Effects returns card's effects in declaration order. Effects registered
// without an icon share on the card's dogma icon.
func (r *Registry) Effects(card *cards.Card) []Effect {
	var out []Effect
	for key, e := range r.effects {
		if key.Card != card.ID {
			continue
		}
		if e.Icon == cards.IconNone {
			e.Icon = card.EffectType
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Index < out[j].Key.Index })
	return out
}

// Validate checks that every effect text in catalog has a registered effect
// with a matching demand flag, and that nothing is registered beyond the texts.
func (r *Registry) Validate(catalog []*cards.Card) error {
	var errs []error
	known := make(map[cards.CardID]*cards.Card, len(catalog))

	for _, c := range catalog {
		known[c.ID] = c
		for i, text := range c.Texts {
			key := EffectKey{Card: c.ID, Index: i}
			e, ok := r.effects[key]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: no effect for %s", ErrIncompleteRegistry, key))
				continue
			}
			if demand := strings.HasPrefix(text, demandPrefix); demand != e.Demand {
				errs = append(errs, fmt.Errorf("%w: effect %s demand=%t but text says %t", ErrIncompleteRegistry, key, e.Demand, demand))
			}
		}
	}

	keys := make([]EffectKey, 0, len(r.effects))
	for key := range r.effects {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Card != keys[j].Card {
			return keys[i].Card < keys[j].Card
		}
		return keys[i].Index < keys[j].Index
	})
	for _, key := range keys {
		c, ok := known[key.Card]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: effect %s for unknown card", ErrIncompleteRegistry, key))
			continue
		}
		if key.Index < 0 || key.Index >= len(c.Texts) {
			errs = append(errs, fmt.Errorf("%w: effect %s beyond the card's %d texts", ErrIncompleteRegistry, key, len(c.Texts)))
		}
	}

	return errors.Join(errs...)
}
