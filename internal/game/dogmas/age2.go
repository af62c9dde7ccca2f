package dogmas

import (
	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
)

func registerAge2(reg *game.Registry) {
	reg.Register("Calendar", 0, false, calendar)
	reg.Register("Canal Building", 0, false, canalBuilding)
	reg.Register("Construction", 0, true, constructionDemand)
	reg.Register("Construction", 1, false, constructionEmpire)
	reg.Register("Currency", 0, false, currency)
	reg.Register("Fermenting", 0, false, fermenting)
	reg.Register("Mapmaking", 0, true, mapmakingDemand)
	reg.Register("Mapmaking", 1, false, mapmakingScore)
	reg.Register("Mathematics", 0, false, mathematics)
	reg.Register("Monotheism", 0, true, monotheismDemand)
	reg.Register("Monotheism", 1, false, monotheismTuck)
	reg.Register("Philosophy", 0, false, philosophySplay)
	reg.Register("Philosophy", 1, false, philosophyScore)
	reg.Register("Road Building", 0, false, roadBuilding)
}

func calendar(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if p.Score.Len() > p.Hand.Len() {
		g.Draw(p, 3)
		g.Draw(p, 3)
	}
}

func canalBuilding(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if p.Hand.IsEmpty() && p.Score.IsEmpty() {
		return
	}
	offer(g, p, "exchange your highest hand and score cards", false, []options.Option{
		&options.Exchange{
			PileA:  p.Hand,
			CardsA: p.Hand.Highest(),
			PileB:  p.Score,
			CardsB: p.Score.Highest(),
		},
	})
}

func constructionDemand(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	for i := 0; i < 2; i++ {
		opts := make([]options.Option, 0, p.Hand.Len())
		for _, c := range p.Hand.Cards() {
			opts = append(opts, &options.TransferCard{Card: c, To: ec.TurnPlayer.Hand})
		}
		offer(g, p, "transfer a card to "+ec.TurnPlayer.Name+"'s hand", true, opts)
	}
	g.Draw(p, 2)
}

func constructionEmpire(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if len(p.Board.TopCards()) != len(cards.Colors) {
		return
	}
	for _, o := range p.Opponents() {
		if len(o.Board.TopCards()) == len(cards.Colors) {
			return
		}
	}
	g.ClaimSpecial(p, game.Empire)
}

func currency(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	values := make(map[int]bool)
	for _, c := range returnUpTo(g, p, "return a card from your hand", -1) {
		values[c.Age] = true
	}
	for range values {
		g.DrawAndScore(p, 2)
	}
}

func fermenting(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	for n := game.IconsOnBoard(p, cards.IconLeaf) / 2; n > 0; n-- {
		g.Draw(p, 2)
	}
}

func mapmakingDemand(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	ones := ofAge(p.Score.Cards(), 1)
	opts := make([]options.Option, len(ones))
	for i, c := range ones {
		opts[i] = &options.TransferCard{Card: c, To: ec.TurnPlayer.Score}
	}
	if offer(g, p, "transfer a 1 to "+ec.TurnPlayer.Name+"'s score pile", true, opts) != nil {
		ec.Action.Add(mapmakingTransfers, 1)
	}
}

func mapmakingScore(g *game.Game, ec game.ExecutionContext) {
	if ec.Action.Count(mapmakingTransfers) > 0 {
		g.DrawAndScore(ec.ActivePlayer, 1)
	}
}

func mathematics(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if c := returned(offer(g, p, "return a card from your hand", false, each(p.Hand.Cards(), returnCard))); c != nil {
		g.DrawAndMeld(p, c.Age+1)
	}
}

func monotheismDemand(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	var opts []options.Option
	for _, c := range p.Board.TopCards() {
		if !ec.TurnPlayer.Board.HasColor(c.Color) {
			opts = append(opts, &options.TransferCard{Card: c, To: ec.TurnPlayer.Score})
		}
	}
	if offer(g, p, "transfer a top card to "+ec.TurnPlayer.Name+"'s score pile", true, opts) == nil {
		return
	}
	offer(g, p, "draw and tuck a 1", true, []options.Option{&options.DrawAndTuck{Value: 1}})
}

func monotheismTuck(g *game.Game, ec game.ExecutionContext) {
	g.DrawAndTuck(ec.ActivePlayer, 1)
}

func philosophySplay(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	var opts []options.Option
	for _, s := range p.Board.Stacks() {
		if s.Len() >= 2 && s.Splay() != board.SplayLeft {
			opts = append(opts, &options.Splay{Color: s.Color(), Direction: board.SplayLeft})
		}
	}
	offer(g, p, "splay a color left", false, opts)
}

func philosophyScore(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	offer(g, p, "score a card from your hand", false, each(p.Hand.Cards(), scoreCard))
}

func roadBuilding(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if offer(g, p, "meld a card from your hand", true, each(p.Hand.Cards(), meldCard)) == nil {
		return
	}
	if _, ok := offer(g, p, "meld a second card", false, each(p.Hand.Cards(), meldCard)).(*options.MeldCard); !ok {
		return
	}

	red := p.Board.Stack(cards.ColorRed).Top()
	if red == nil {
		return
	}
	var opts []options.Option
	for _, o := range p.Opponents() {
		opts = append(opts, &options.TransferCard{Card: red, To: &o.Board.Stack(cards.ColorRed).Pile})
	}
	moved, ok := offer(g, p, "transfer your top red card to another board", false, opts).(*options.TransferCard)
	if !ok {
		return
	}
	for _, o := range p.Opponents() {
		if &o.Board.Stack(cards.ColorRed).Pile == moved.To {
			g.TransferToBoard(o.Board.Stack(cards.ColorGreen).Top(), p)
			return
		}
	}
}
