package game

import (
	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/options"
)

// PlayerConfig describes a seat at the table.
type PlayerConfig struct {
	ID       string
	Name     string
	IsAI     bool
	Provider options.DecisionProvider
}

// Player is one seat: a board of five stacks plus hand, score and achievement piles.
type Player struct {
	ID           string
	Name         string
	IsAI         bool
	Board        *board.Board
	Hand         *board.Pile
	Score        *board.Pile
	Achievements *board.Pile

	// ShareOrder lists every player in table order starting with the player
	// after this one and ending with this player.
	ShareOrder []*Player

	// Provider answers every decision this player faces.
	Provider options.DecisionProvider
}

func newPlayer(cfg PlayerConfig) *Player {
	name := cfg.Name
	if name == "" {
		name = cfg.ID
	}
	return &Player{
		ID:           cfg.ID,
		Name:         name,
		IsAI:         cfg.IsAI,
		Board:        board.NewBoard(cfg.ID),
		Hand:         board.NewPile(cfg.ID + "/hand"),
		Score:        board.NewPile(cfg.ID + "/score"),
		Achievements: board.NewPile(cfg.ID + "/achievements"),
		Provider:     cfg.Provider,
	}
}

// containers returns every pile the player owns.
func (p *Player) containers() []board.Container {
	out := []board.Container{p.Hand, p.Score, p.Achievements}
	return append(out, p.Board.Containers()...)
}

// Opponents returns the other players in share order.
func (p *Player) Opponents() []*Player {
	out := make([]*Player, 0, len(p.ShareOrder))
	for _, other := range p.ShareOrder {
		if other != p {
			out = append(out, other)
		}
	}
	return out
}

func (p *Player) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.Name
}

// assignShareOrders fills ShareOrder for every player from the table order.
func assignShareOrders(players []*Player) {
	n := len(players)
	for i, p := range players {
		order := make([]*Player, 0, n)
		for step := 1; step <= n; step++ {
			order = append(order, players[(i+step)%n])
		}
		p.ShareOrder = order
	}
}
