package game

import (
	"github.com/innovation-engine/innovation-go/internal/game/cards"
)

// IconsOnBoard sums the visible icons across p's five stacks.
func IconsOnBoard(p *Player, icon cards.Icon) int {
	return p.Board.Icons(icon)
}

// ResolveSharing returns the players who take part in a non-demand effect: the
// turn player first, then every other player in the turn player's share order
// with at least as many of the effect's icon. Ties share.
func (g *Game) ResolveSharing(effect Effect, turnPlayer *Player) []*Player {
	threshold := IconsOnBoard(turnPlayer, effect.Icon)
	sharing := []*Player{turnPlayer}
	for _, p := range turnPlayer.ShareOrder {
		if p == turnPlayer {
			continue
		}
		if IconsOnBoard(p, effect.Icon) >= threshold {
			sharing = append(sharing, p)
		}
	}
	return sharing
}

// Compelled returns the players a demand effect applies to: the turn player's
// share order minus the sharing set, in share order.
func (g *Game) Compelled(effect Effect, turnPlayer *Player) []*Player {
	return compelledBy(turnPlayer, g.ResolveSharing(effect, turnPlayer))
}

func compelledBy(turnPlayer *Player, sharing []*Player) []*Player {
	in := make(map[*Player]bool, len(sharing))
	for _, p := range sharing {
		in[p] = true
	}
	var out []*Player
	for _, p := range turnPlayer.ShareOrder {
		if !in[p] {
			out = append(out, p)
		}
	}
	return out
}
