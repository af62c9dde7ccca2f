package game

import (
	"fmt"
	"testing"

	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const fillerPerAge = 8

var blank = [4]cards.Icon{cards.IconBlank, cards.IconBlank, cards.IconBlank, cards.IconBlank}

func icons(i0, i1, i2, i3 cards.Icon) [4]cards.Icon {
	return [4]cards.Icon{i0, i1, i2, i3}
}

func newCard(name string, color cards.Color, age int, effect cards.Icon, slots [4]cards.Icon, texts ...string) *cards.Card {
	return &cards.Card{
		ID:         cards.CardID(name),
		Name:       name,
		Color:      color,
		Age:        age,
		EffectType: effect,
		Icons:      slots,
		Texts:      texts,
	}
}

// fillerCatalog returns iconless cards for every age, cycling through the colors.
func fillerCatalog() []*cards.Card {
	var out []*cards.Card
	for age := cards.MinAge; age <= cards.MaxAge; age++ {
		for i := 0; i < fillerPerAge; i++ {
			name := fmt.Sprintf("Filler %02d-%d", age, i)
			out = append(out, newCard(name, cards.Colors[i%len(cards.Colors)], age, cards.IconCrown, blank))
		}
	}
	return out
}

func specials() []*cards.Card {
	var out []*cards.Card
	for _, name := range []string{Monument, Empire, World, Wonder, Universe} {
		out = append(out, &cards.Card{
			ID:         cards.CardID(name),
			Name:       name,
			Color:      cards.ColorNone,
			EffectType: cards.IconNone,
			Icons:      blank,
		})
	}
	return out
}

// firstOption always picks the first offered option.
var firstOption = options.ProviderFunc(func(req options.Request) options.Option {
	return req.Options[0]
})

// lastOption always picks the last offered option, which is Pass for optional choices.
var lastOption = options.ProviderFunc(func(req options.Request) options.Option {
	return req.Options[len(req.Options)-1]
})

type gameFixture struct {
	g        *Game
	registry *Registry
	players  []*Player
	events   []rules.Event
}

// newFixture builds an unshuffled game of n players over the filler catalog plus extra.
func newFixture(t *testing.T, n int, registry *Registry, extra ...*cards.Card) *gameFixture {
	t.Helper()
	if registry == nil {
		registry = NewRegistry()
	}
	cfg := Config{
		ID:       "test-game",
		Catalog:  append(fillerCatalog(), extra...),
		Specials: specials(),
		Registry: registry,
		Seed:     1,
	}
	for i := 1; i <= n; i++ {
		cfg.Players = append(cfg.Players, PlayerConfig{ID: fmt.Sprintf("p%d", i), Provider: firstOption})
	}

	g, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	f := &gameFixture{g: g, registry: registry, players: g.Players()}
	g.Subscribe(func(e rules.Event) { f.events = append(f.events, e) })
	return f
}

func (f *gameFixture) count(eventType rules.EventType) int {
	n := 0
	for _, e := range f.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

// meld puts the named card on top of p's board straight from wherever it is.
func (f *gameFixture) meld(t *testing.T, p *Player, name string) *cards.Card {
	t.Helper()
	c := f.g.Card(name)
	require.NotNil(t, c, "card %s", name)
	f.g.Meld(p, c)
	return c
}

// totalCards counts every card in every pile.
func totalCards(g *Game) int {
	n := 0
	for _, c := range g.containers() {
		n += c.Len()
	}
	return n
}
