package dogmas

import (
	"github.com/innovation-engine/innovation-go/internal/game"
	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/options"
)

func registerAge9(reg *game.Registry) {
	reg.Register("Computers", 0, false, computersSplay)
	reg.Register("Computers", 1, false, computersExecute)
}

func computersSplay(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	var opts []options.Option
	for _, color := range []cards.Color{cards.ColorRed, cards.ColorGreen} {
		if s := p.Board.Stack(color); s.Len() >= 2 && s.Splay() != board.SplayUp {
			opts = append(opts, &options.Splay{Color: color, Direction: board.SplayUp})
		}
	}
	offer(g, p, "splay red or green up", false, opts)
}

// computersExecute melds a 6 and runs its non-demand effects for the active
// player only.
func computersExecute(g *game.Game, ec game.ExecutionContext) {
	p := ec.ActivePlayer
	if c := g.DrawAndMeld(p, 6); c != nil {
		g.ResolveForSelf(c, p)
	}
}
