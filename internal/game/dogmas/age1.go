package dogmas

import (
	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
)

const (
	// Oars and Mapmaking tell their second effect whether the demand moved a card.
	oarsTransfers      = "oars.transferred"
	mapmakingTransfers = "mapmaking.transferred"

	masonryMonumentMelds = 4
	cityStatesCastles    = 4
)

func registerAge1(reg *game.Registry) {
	reg.Register("Agriculture", 0, false, agriculture)
	reg.Register("Archery", 0, true, archery)
	reg.Register("City States", 0, true, cityStates)
	reg.Register("Clothing", 0, false, clothingMeld)
	reg.Register("Clothing", 1, false, clothingScore)
	reg.Register("Code of Laws", 0, false, codeOfLaws)
	reg.Register("Domestication", 0, false, domestication)
	reg.Register("Masonry", 0, false, masonry)
	reg.Register("Metalworking", 0, false, metalworking)
	reg.Register("Mysticism", 0, false, mysticism)
	reg.Register("Oars", 0, true, oarsDemand)
	reg.Register("Oars", 1, false, oarsFallback)
	reg.Register("Pottery", 0, false, pottery)
	reg.Register("Pottery", 1, false, drawOne)
	reg.Register("Sailing", 0, false, sailing)
	reg.Register("The Wheel", 0, false, theWheel)
	reg.Register("Tools", 0, false, toolsReturnThree)
	reg.Register("Tools", 1, false, toolsReturnAThree)
	reg.Register("Writing", 0, false, writing)
}

func drawOne(g *game.Game, ec game.ExecutionContext) {
	g.Draw(ec.ActivePlayer, 1)
}

func agriculture(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if c := returned(offer(g, p, "return a card from your hand", false, each(p.Hand.Cards(), returnCard))); c != nil {
		g.DrawAndScore(p, c.Age+1)
	}
}

func archery(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	g.Draw(p, 1)
	highest := p.Hand.Highest()
	opts := make([]options.Option, len(highest))
	for i, c := range highest {
		opts[i] = &options.TransferCard{Card: c, To: ec.TurnPlayer.Hand}
	}
	offer(g, p, "transfer the highest card in your hand", true, opts)
}

func cityStates(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if game.IconsOnBoard(p, cards.IconCastle) < cityStatesCastles {
		return
	}
	c := chooseCard(g, p, "transfer a top card with a castle", true, withIcon(p.Board.TopCards(), cards.IconCastle))
	if c == nil {
		return
	}
	g.TransferToBoard(c, ec.TurnPlayer)
	g.Draw(p, 1)
}

func clothingMeld(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	fresh := p.Hand.Filter(func(c *cards.Card) bool { return !p.Board.HasColor(c.Color) })
	offer(g, p, "meld a card of a color not on your board", true, each(fresh, meldCard))
}

func clothingScore(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	for _, color := range cards.Colors {
		if !p.Board.HasColor(color) {
			continue
		}
		unique := true
		for _, o := range p.Opponents() {
			if o.Board.HasColor(color) {
				unique = false
				break
			}
		}
		if unique {
			g.DrawAndScore(p, 1)
		}
	}
}

func codeOfLaws(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	matching := p.Hand.Filter(func(c *cards.Card) bool { return p.Board.HasColor(c.Color) })
	tucked, ok := offer(g, p, "tuck a card of a color on your board", false, each(matching, tuckCard)).(*options.TuckCard)
	if !ok {
		return
	}
	color := tucked.Card.Color
	if s := p.Board.Stack(color); s.Len() < 2 || s.Splay() == board.SplayLeft {
		return
	}
	offer(g, p, "splay "+color.String()+" left", false, []options.Option{
		&options.Splay{Color: color, Direction: board.SplayLeft},
	})
}

func domestication(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	offer(g, p, "meld the lowest card in your hand", true, each(p.Hand.Lowest(), meldCard))
	g.Draw(p, 1)
}

func masonry(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	melded := 0
	for {
		castles := withIcon(p.Hand.Cards(), cards.IconCastle)
		if _, ok := offer(g, p, "meld a card with a castle", false, each(castles, meldCard)).(*options.MeldCard); !ok {
			break
		}
		melded++
	}
	if melded >= masonryMonumentMelds {
		g.ClaimSpecial(p, game.Monument)
	}
}

func metalworking(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	for !g.Over() {
		c := g.DrawAndReveal(p, 1)
		if c == nil || !c.Has(cards.IconCastle) {
			return
		}
		g.ScoreCard(p, c)
	}
}

func mysticism(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	c := g.Draw(p, 1)
	if c == nil || !p.Board.HasColor(c.Color) {
		return
	}
	g.Meld(p, c)
	g.Draw(p, 1)
}

func oarsDemand(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	crowns := withIcon(p.Hand.Cards(), cards.IconCrown)
	opts := make([]options.Option, len(crowns))
	for i, c := range crowns {
		opts[i] = &options.TransferCard{Card: c, To: ec.TurnPlayer.Score}
	}
	if offer(g, p, "transfer a card with a crown to "+ec.TurnPlayer.Name+"'s score pile", true, opts) == nil {
		return
	}
	ec.Action.Add(oarsTransfers, 1)
	g.Draw(p, 1)
}

func oarsFallback(g *game.Game, ec game.ExecutionContext) {
	if ec.Action.Count(oarsTransfers) == 0 {
		g.Draw(ec.ActivePlayer, 1)
	}
}

func pottery(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if n := len(returnUpTo(g, p, "return a card from your hand", 3)); n > 0 {
		g.DrawAndScore(p, n)
	}
}

func sailing(g *game.Game, ec game.ExecutionContext) {
	g.DrawAndMeld(ec.ActivePlayer, 1)
}

func theWheel(g *game.Game, ec game.ExecutionContext) {
	g.Draw(ec.ActivePlayer, 1)
	g.Draw(ec.ActivePlayer, 1)
}

func toolsReturnThree(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if p.Hand.Len() < 3 {
		return
	}
	first := chooseCard(g, p, "return three cards from your hand", false, p.Hand.Cards())
	if first == nil {
		return
	}
	g.Return(first)
	for i := 0; i < 2; i++ {
		offer(g, p, "return another card", true, each(p.Hand.Cards(), returnCard))
	}
	g.DrawAndMeld(p, 3)
}

func toolsReturnAThree(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if returned(offer(g, p, "return a 3 from your hand", false, each(ofAge(p.Hand.Cards(), 3), returnCard))) == nil {
		return
	}
	for i := 0; i < 3; i++ {
		g.Draw(p, 1)
	}
}

func writing(g *game.Game, ec game.ExecutionContext) {
	g.Draw(ec.ActivePlayer, 2)
}
