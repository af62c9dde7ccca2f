// Package dogmas holds the effect bodies of the bundled card catalog. Each
// effect is registered under its card name and the index of its text.
package dogmas

import (
	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
)

// Register binds the effects of every bundled card into reg.
func Register(reg *game.Registry) {
	registerAge1(reg)
	registerAge2(reg)
	registerAge9(reg)
}

// NewRegistry returns a registry holding every bundled effect.
func NewRegistry() *game.Registry {
	reg := game.NewRegistry()
	Register(reg)
	return reg
}

// offer presents opts to p, adding Pass unless mandatory, and applies the choice.
// Nothing is asked when opts is empty.
func offer(g *game.Game, p *game.Player, prompt string, mandatory bool, opts []options.Option) options.Option {
	if len(opts) == 0 {
		return nil
	}
	return g.Offer(p, prompt, options.Build(mandatory, opts...))
}

// chooseCard asks p to pick one of cs and returns it, or nil on a pass.
func chooseCard(g *game.Game, p *game.Player, prompt string, mandatory bool, cs []*cards.Card) *cards.Card {
	if len(cs) == 0 {
		return nil
	}
	opts := make([]options.Option, len(cs))
	for i, c := range cs {
		opts[i] = &options.ChooseCard{Card: c}
	}
	if choice, ok := g.Choose(p, prompt, options.Build(mandatory, opts...)).(*options.ChooseCard); ok {
		return choice.Card
	}
	return nil
}

func each(cs []*cards.Card, mk func(*cards.Card) options.Option) []options.Option {
	out := make([]options.Option, len(cs))
	for i, c := range cs {
		out[i] = mk(c)
	}
	return out
}

func returnCard(c *cards.Card) options.Option { return &options.ReturnCard{Card: c} }
func meldCard(c *cards.Card) options.Option   { return &options.MeldCard{Card: c} }
func tuckCard(c *cards.Card) options.Option   { return &options.TuckCard{Card: c} }
func scoreCard(c *cards.Card) options.Option {
	return &options.ScoreCards{Cards: []*cards.Card{c}}
}

// returned reports the card of a ReturnCard choice, or nil.
func returned(o options.Option) *cards.Card {
	if r, ok := o.(*options.ReturnCard); ok {
		return r.Card
	}
	return nil
}

// returnUpTo lets p return up to limit hand cards one at a time, stopping at
// the first pass. A negative limit means any number.
func returnUpTo(g *game.Game, p *game.Player, prompt string, limit int) []*cards.Card {
	var out []*cards.Card
	for limit < 0 || len(out) < limit {
		c := returned(offer(g, p, prompt, false, each(p.Hand.Cards(), returnCard)))
		if c == nil {
			break
		}
		out = append(out, c)
	}
	return out
}

func withIcon(cs []*cards.Card, icon cards.Icon) []*cards.Card {
	var out []*cards.Card
	for _, c := range cs {
		if c.Has(icon) {
			out = append(out, c)
		}
	}
	return out
}

func ofAge(cs []*cards.Card, age int) []*cards.Card {
	var out []*cards.Card
	for _, c := range cs {
		if c.Age == age {
			out = append(out, c)
		}
	}
	return out
}
