package dogmas

import (
	"fmt"
	"os"
	"testing"

	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const dataDir = "../../../data"

func loadCatalog(t *testing.T) []*cards.Card {
	t.Helper()
	f, err := os.Open(dataDir + "/cards.txt")
	require.NoError(t, err)
	defer f.Close()
	catalog, err := cards.ParseCatalog(f)
	require.NoError(t, err)
	return catalog
}

func loadSpecials(t *testing.T) []*cards.Card {
	t.Helper()
	f, err := os.Open(dataDir + "/achievements.txt")
	require.NoError(t, err)
	defer f.Close()
	specials, err := cards.ParseAchievements(f)
	require.NoError(t, err)
	return specials
}

var firstOption = options.ProviderFunc(func(req options.Request) options.Option {
	return req.Options[0]
})

var lastOption = options.ProviderFunc(func(req options.Request) options.Option {
	return req.Options[len(req.Options)-1]
})

// picks takes the first option n times and the last one afterwards.
func picks(n int) options.DecisionProvider {
	return options.ProviderFunc(func(req options.Request) options.Option {
		if n > 0 {
			n--
			return req.Options[0]
		}
		return req.Options[len(req.Options)-1]
	})
}

type fixture struct {
	g      *game.Game
	p1, p2 *game.Player
	events []rules.Event
}

// newFixture builds an unshuffled two player game over the bundled catalog.
// Cards are placed by hand; Setup is never run.
func newFixture(t *testing.T, reg *game.Registry, extra []*cards.Card, providers ...options.DecisionProvider) *fixture {
	t.Helper()
	if reg == nil {
		reg = NewRegistry()
	}
	cfg := game.Config{
		ID:       "dogma-test",
		Catalog:  append(loadCatalog(t), extra...),
		Specials: loadSpecials(t),
		Registry: reg,
		Seed:     1,
	}
	for i := 0; i < 2; i++ {
		var provider options.DecisionProvider = firstOption
		if i < len(providers) {
			provider = providers[i]
		}
		cfg.Players = append(cfg.Players, game.PlayerConfig{ID: fmt.Sprintf("p%d", i+1), Provider: provider})
	}

	g, err := game.New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	f := &fixture{g: g, p1: g.Players()[0], p2: g.Players()[1]}
	g.Subscribe(func(e rules.Event) { f.events = append(f.events, e) })
	return f
}

func (f *fixture) card(t *testing.T, name string) *cards.Card {
	t.Helper()
	c := f.g.Card(name)
	require.NotNil(t, c, "card %s", name)
	return c
}

func (f *fixture) meld(t *testing.T, p *game.Player, names ...string) {
	t.Helper()
	for _, name := range names {
		f.g.Meld(p, f.card(t, name))
	}
}

// give puts the named cards on top of pile in order, so the last one ends on top.
func (f *fixture) give(t *testing.T, pile *board.Pile, names ...string) {
	t.Helper()
	for _, name := range names {
		f.g.Transfer(f.card(t, name), pile)
	}
}

func (f *fixture) count(eventType rules.EventType) int {
	n := 0
	for _, e := range f.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

func boardSize(p *game.Player) int {
	n := 0
	for _, s := range p.Board.Stacks() {
		n += s.Len()
	}
	return n
}
