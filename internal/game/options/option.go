// Package options implements the closed-choice decision points used by dogma
// effects: an effect offers a list of legal Options, the acting player's
// DecisionProvider picks exactly one, and the chosen Option is applied.
package options

import (
	"fmt"
	"strings"

	"github.com/innovation-engine/innovation-go/internal/game/board"
	"github.com/innovation-engine/innovation-go/internal/game/cards"
)

// Kind names an Option variant.
type Kind string

const (
	KindPass         Kind = "PASS"
	KindSplay        Kind = "SPLAY"
	KindExchange     Kind = "EXCHANGE"
	KindReturnCard   Kind = "RETURN_CARD"
	KindScoreCards   Kind = "SCORE_CARDS"
	KindDrawAndTuck  Kind = "DRAW_AND_TUCK"
	KindMeldCard     Kind = "MELD_CARD"
	KindTuckCard     Kind = "TUCK_CARD"
	KindTransferCard Kind = "TRANSFER_CARD"
	KindChooseCard   Kind = "CHOOSE_CARD"
)

// Target is the primitive layer options apply through. Every method is a no-op
// once the game is over.
type Target interface {
	SplayStack(playerID string, color cards.Color, dir board.Splay) bool
	TransferCard(card *cards.Card, to *board.Pile)
	ReturnCard(card *cards.Card)
	ScoreCard(playerID string, card *cards.Card)
	MeldCard(playerID string, card *cards.Card)
	TuckCard(playerID string, card *cards.Card)
	DrawAndTuckCard(playerID string, age int) *cards.Card
}

// Option is one legal choice at a decision point. Options are constructed fresh
// for each decision and compared by identity, so every variant is a pointer type.
type Option interface {
	Kind() Kind
	String() string
	Apply(t Target, playerID string)
}

// Pass declines an optional effect.
type Pass struct{}

func (*Pass) Kind() Kind           { return KindPass }
func (*Pass) String() string       { return "pass" }
func (*Pass) Apply(Target, string) {}

// Splay fans the acting player's stack of Color in Direction.
type Splay struct {
	Color     cards.Color
	Direction board.Splay
}

func (*Splay) Kind() Kind { return KindSplay }
func (o *Splay) String() string {
	return fmt.Sprintf("splay %s %s", o.Color, o.Direction)
}
func (o *Splay) Apply(t Target, playerID string) {
	t.SplayStack(playerID, o.Color, o.Direction)
}

// Exchange swaps CardsA (from PileA) with CardsB (from PileB).
type Exchange struct {
	PileA  *board.Pile
	CardsA []*cards.Card
	PileB  *board.Pile
	CardsB []*cards.Card
}

func (*Exchange) Kind() Kind { return KindExchange }
func (o *Exchange) String() string {
	return fmt.Sprintf("exchange [%s] from %s with [%s] from %s",
		names(o.CardsA), o.PileA.Name(), names(o.CardsB), o.PileB.Name())
}
func (o *Exchange) Apply(t Target, _ string) {
	// Both sides are fixed before anything moves.
	a := append([]*cards.Card(nil), o.CardsA...)
	b := append([]*cards.Card(nil), o.CardsB...)
	for _, c := range a {
		t.TransferCard(c, o.PileB)
	}
	for _, c := range b {
		t.TransferCard(c, o.PileA)
	}
}

// ReturnCard puts Card back at the bottom of its age's draw pile.
type ReturnCard struct {
	Card *cards.Card
}

func (*ReturnCard) Kind() Kind       { return KindReturnCard }
func (o *ReturnCard) String() string { return "return " + o.Card.Name }
func (o *ReturnCard) Apply(t Target, _ string) {
	t.ReturnCard(o.Card)
}

// ScoreCards moves Cards into the acting player's score pile.
type ScoreCards struct {
	Cards []*cards.Card
}

func (*ScoreCards) Kind() Kind       { return KindScoreCards }
func (o *ScoreCards) String() string { return "score " + names(o.Cards) }
func (o *ScoreCards) Apply(t Target, playerID string) {
	for _, c := range o.Cards {
		t.ScoreCard(playerID, c)
	}
}

// DrawAndTuck draws a card of Value and tucks it.
type DrawAndTuck struct {
	Value int
}

func (*DrawAndTuck) Kind() Kind       { return KindDrawAndTuck }
func (o *DrawAndTuck) String() string { return fmt.Sprintf("draw and tuck a %d", o.Value) }
func (o *DrawAndTuck) Apply(t Target, playerID string) {
	t.DrawAndTuckCard(playerID, o.Value)
}

// MeldCard melds Card onto the acting player's board.
type MeldCard struct {
	Card *cards.Card
}

func (*MeldCard) Kind() Kind       { return KindMeldCard }
func (o *MeldCard) String() string { return "meld " + o.Card.Name }
func (o *MeldCard) Apply(t Target, playerID string) {
	t.MeldCard(playerID, o.Card)
}

// TuckCard tucks Card under the acting player's stack of its color.
type TuckCard struct {
	Card *cards.Card
}

func (*TuckCard) Kind() Kind       { return KindTuckCard }
func (o *TuckCard) String() string { return "tuck " + o.Card.Name }
func (o *TuckCard) Apply(t Target, playerID string) {
	t.TuckCard(playerID, o.Card)
}

// TransferCard moves Card onto the top of pile To.
type TransferCard struct {
	Card *cards.Card
	To   *board.Pile
}

func (*TransferCard) Kind() Kind { return KindTransferCard }
func (o *TransferCard) String() string {
	return fmt.Sprintf("transfer %s to %s", o.Card.Name, o.To.Name())
}
func (o *TransferCard) Apply(t Target, _ string) {
	t.TransferCard(o.Card, o.To)
}

// ChooseCard selects a card without moving it; the effect acts on the choice.
type ChooseCard struct {
	Card *cards.Card
}

func (*ChooseCard) Kind() Kind           { return KindChooseCard }
func (o *ChooseCard) String() string     { return "choose " + o.Card.Name }
func (*ChooseCard) Apply(Target, string) {}

// Build returns opts followed by Pass unless the choice is mandatory.
func Build(mandatory bool, opts ...Option) []Option {
	out := make([]Option, 0, len(opts)+1)
	out = append(out, opts...)
	if !mandatory {
		out = append(out, &Pass{})
	}
	return out
}

// IsPass reports whether an option declines the choice. A nil option counts as a pass.
func IsPass(o Option) bool {
	return o == nil || o.Kind() == KindPass
}

func names(cs []*cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.Name
	}
	return strings.Join(parts, ", ")
}
