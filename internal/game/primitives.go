package game

import (
	"fmt"

	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"go.uber.org/zap"
)

// Every mutation of pile contents or splay state goes through the primitives in
// this file. Each one starts with the same game-over check, so an effect that
// keeps going after the game ended cannot change anything.

func (g *Game) halted() bool {
	return g.Over()
}

// detach removes card from whichever pile holds it and returns that pile's name.
func (g *Game) detach(card *cards.Card) string {
	for _, c := range g.containers() {
		if c.Remove(card) {
			return c.PileName()
		}
	}
	return ""
}

// Draw moves the top card of the lowest non-empty age pile at or above age into
// p's hand. When no such pile exists the game ends by score and nil is returned.
func (g *Game) Draw(p *Player, age int) *cards.Card {
	if g.halted() {
		return nil
	}
	if age < cards.MinAge {
		age = cards.MinAge
	}
	for a := age; a <= cards.MaxAge; a++ {
		c, ok := g.supply[a].PopTop()
		if !ok {
			continue
		}
		p.Hand.PushTop(c)
		evt := rules.NewMoveEvent(rules.EventDraw, p.ID, string(c.ID), g.supply[a].Name(), p.Hand.Name())
		evt.Amount = age
		g.emit(evt)
		return c
	}

	evt := rules.NewEventWithAmount(rules.EventEmptyDraw, p.ID, "", age)
	evt.Description = fmt.Sprintf("no card of age %d or higher", age)
	g.emit(evt)
	g.EndByScore(fmt.Sprintf("%s could not draw a %d", p.Name, age))
	return nil
}

// DrawValue is the age p draws at: the highest top card on their board, minimum 1.
func (g *Game) DrawValue(p *Player) int {
	if v := p.Board.HighestTop(); v > cards.MinAge {
		return v
	}
	return cards.MinAge
}

// Meld puts card on top of p's stack of its color.
func (g *Game) Meld(p *Player, card *cards.Card) {
	if g.halted() || card == nil {
		return
	}
	stack := p.Board.Stack(card.Color)
	if stack == nil {
		return
	}
	from := g.detach(card)
	stack.PushTop(card)
	g.emit(rules.NewMoveEvent(rules.EventMeld, p.ID, string(card.ID), from, stack.Name()))
}

// Tuck puts card at the bottom of p's stack of its color.
func (g *Game) Tuck(p *Player, card *cards.Card) {
	if g.halted() || card == nil {
		return
	}
	stack := p.Board.Stack(card.Color)
	if stack == nil {
		return
	}
	from := g.detach(card)
	stack.PushBottom(card)
	g.emit(rules.NewMoveEvent(rules.EventTuck, p.ID, string(card.ID), from, stack.Name()))
}

// ScoreCard moves card into p's score pile.
func (g *Game) ScoreCard(p *Player, card *cards.Card) {
	if g.halted() || card == nil {
		return
	}
	from := g.detach(card)
	p.Score.PushTop(card)
	g.emit(rules.NewMoveEvent(rules.EventScore, p.ID, string(card.ID), from, p.Score.Name()))
}

// Return puts card at the bottom of the draw pile of its age.
func (g *Game) Return(card *cards.Card) {
	if g.halted() || card == nil {
		return
	}
	pile := g.Supply(card.Age)
	if pile == nil {
		return
	}
	from := g.detach(card)
	pile.PushBottom(card)
	g.emit(rules.NewMoveEvent(rules.EventReturn, g.ownerOf(from), string(card.ID), from, pile.Name()))
}

// Transfer moves card from wherever it is onto the top of pile to.
func (g *Game) Transfer(card *cards.Card, to *board.Pile) {
	if g.halted() || card == nil || to == nil {
		return
	}
	from := g.detach(card)
	to.PushTop(card)
	g.emit(rules.NewMoveEvent(rules.EventTransfer, g.ownerOf(to.Name()), string(card.ID), from, to.Name()))
}

// TransferToBoard moves card onto the top of p's stack of its color.
func (g *Game) TransferToBoard(card *cards.Card, p *Player) {
	if g.halted() || card == nil {
		return
	}
	stack := p.Board.Stack(card.Color)
	if stack == nil {
		return
	}
	from := g.detach(card)
	stack.PushTop(card)
	g.emit(rules.NewMoveEvent(rules.EventTransfer, p.ID, string(card.ID), from, stack.Name()))
}

// Splay splays p's stack of color in dir. Stacks of fewer than two cards and
// unchanged directions are left alone and report false.
func (g *Game) Splay(p *Player, color cards.Color, dir board.Splay) bool {
	if g.halted() {
		return false
	}
	stack := p.Board.Stack(color)
	if stack == nil || !stack.SetSplay(dir) {
		return false
	}
	evt := rules.NewEvent(rules.EventSplay, p.ID, "")
	evt.To = stack.Name()
	evt.Data = dir.String()
	g.emit(evt)
	return true
}

// Reveal announces card to every player. It does not move the card.
func (g *Game) Reveal(p *Player, card *cards.Card) {
	if g.halted() || card == nil {
		return
	}
	evt := rules.NewEvent(rules.EventReveal, p.ID, string(card.ID))
	evt.Amount = card.Age
	evt.Description = card.Color.String()
	g.emit(evt)
}

// Achieve moves card into p's achievement pile and checks the achievement win.
func (g *Game) Achieve(p *Player, card *cards.Card) {
	if g.halted() || card == nil {
		return
	}
	from := g.detach(card)
	p.Achievements.PushTop(card)
	g.emit(rules.NewMoveEvent(rules.EventAchieve, p.ID, string(card.ID), from, p.Achievements.Name()))
	g.checkAchievementWin()
}

// ClaimSpecial gives p the named special achievement if it is still unclaimed.
func (g *Game) ClaimSpecial(p *Player, name string) bool {
	if g.halted() {
		return false
	}
	card := g.special.Get(name)
	if card == nil {
		return false
	}
	g.logger.Info("special achievement claimed",
		zap.String("player", p.ID),
		zap.String("achievement", name),
	)
	g.Achieve(p, card)
	return true
}

// DrawAndMeld draws a card of age and melds it.
func (g *Game) DrawAndMeld(p *Player, age int) *cards.Card {
	c := g.Draw(p, age)
	g.Meld(p, c)
	return c
}

// DrawAndScore draws a card of age and scores it.
func (g *Game) DrawAndScore(p *Player, age int) *cards.Card {
	c := g.Draw(p, age)
	g.ScoreCard(p, c)
	return c
}

// DrawAndTuck draws a card of age and tucks it.
func (g *Game) DrawAndTuck(p *Player, age int) *cards.Card {
	c := g.Draw(p, age)
	g.Tuck(p, c)
	return c
}

// DrawAndReveal draws a card of age into p's hand and reveals it.
func (g *Game) DrawAndReveal(p *Player, age int) *cards.Card {
	c := g.Draw(p, age)
	g.Reveal(p, c)
	return c
}

// ScoreTotal is the sum of the ages in p's score pile.
func (g *Game) ScoreTotal(p *Player) int {
	total := 0
	for _, c := range p.Score.Cards() {
		total += c.Age
	}
	return total
}

// ownerOf maps a pile name to the owning player's ID, or "" for shared piles.
func (g *Game) ownerOf(pile string) string {
	for _, p := range g.players {
		prefix := p.ID + "/"
		if len(pile) > len(prefix) && pile[:len(prefix)] == prefix {
			return p.ID
		}
	}
	return ""
}

// optionTarget lets options apply through the primitives by player ID.
type optionTarget struct {
	g *Game
}

func (t optionTarget) player(id string) *Player {
	p := t.g.Player(id)
	if p == nil {
		panic(fmt.Sprintf("game: option applied for unknown player %q", id))
	}
	return p
}

func (t optionTarget) SplayStack(playerID string, color cards.Color, dir board.Splay) bool {
	return t.g.Splay(t.player(playerID), color, dir)
}

func (t optionTarget) TransferCard(card *cards.Card, to *board.Pile) {
	t.g.Transfer(card, to)
}

func (t optionTarget) ReturnCard(card *cards.Card) {
	t.g.Return(card)
}

func (t optionTarget) ScoreCard(playerID string, card *cards.Card) {
	t.g.ScoreCard(t.player(playerID), card)
}

func (t optionTarget) MeldCard(playerID string, card *cards.Card) {
	t.g.Meld(t.player(playerID), card)
}

func (t optionTarget) TuckCard(playerID string, card *cards.Card) {
	t.g.Tuck(t.player(playerID), card)
}

func (t optionTarget) DrawAndTuckCard(playerID string, age int) *cards.Card {
	return t.g.DrawAndTuck(t.player(playerID), age)
}
