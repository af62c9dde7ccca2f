package options

import (
	"fmt"
	"strings"

	"github.com/innovation-engine/innovation-go/internal/game/rules"
	"github.com/innovation-engine/innovation-go/internal/game/snapshot"
	"go.uber.org/zap"
)

// Request is everything a DecisionProvider may look at when choosing.
type Request struct {
	PlayerID string
	Prompt   string
	Options  []Option
	State    snapshot.Snapshot
}

// DecisionProvider picks one of the offered options. Implementations must be
// total (always return), closed-choice (return a member of req.Options), and
// synchronous (the effect is suspended until Select returns).
type DecisionProvider interface {
	Select(req Request) Option
}

// ProviderFunc adapts a function to the DecisionProvider interface.
type ProviderFunc func(req Request) Option

// Select implements DecisionProvider.
func (f ProviderFunc) Select(req Request) Option {
	return f(req)
}

// IllegalOptionError is the panic value raised when a provider returns an
// option that was not offered. It is a contract violation, never recovered.
type IllegalOptionError struct {
	PlayerID string
	Prompt   string
	Got      Option
	Offered  []Option
}

func (e *IllegalOptionError) Error() string {
	got := "<nil>"
	if e.Got != nil {
		got = e.Got.String()
	}
	offered := make([]string, len(e.Offered))
	for i, o := range e.Offered {
		offered[i] = o.String()
	}
	return fmt.Sprintf("player %s chose %q for %q, offered [%s]", e.PlayerID, got, e.Prompt, strings.Join(offered, "; "))
}

// Broker presents options to decision providers and applies the chosen one.
type Broker struct {
	target  Target
	state   func() snapshot.Snapshot
	publish func(rules.Event)
	logger  *zap.Logger
}

// NewBroker creates a broker applying options through target. state supplies the
// public view passed to providers and publish receives an event per decision;
// either may be nil.
func NewBroker(target Target, state func() snapshot.Snapshot, publish func(rules.Event), logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker{
		target:  target,
		state:   state,
		publish: publish,
		logger:  logger,
	}
}

// Choose asks provider to pick one of offered and returns it without applying it.
// An empty list is a dead end and returns nil without consulting the provider.
func (b *Broker) Choose(playerID string, provider DecisionProvider, prompt string, offered []Option) Option {
	if len(offered) == 0 {
		return nil
	}
	if provider == nil {
		panic(fmt.Sprintf("options: player %s has no decision provider", playerID))
	}

	req := Request{
		PlayerID: playerID,
		Prompt:   prompt,
		Options:  append([]Option(nil), offered...),
	}
	if b.state != nil {
		req.State = b.state()
	}

	chosen := provider.Select(req)
	if !contains(offered, chosen) {
		panic(&IllegalOptionError{PlayerID: playerID, Prompt: prompt, Got: chosen, Offered: offered})
	}

	b.logger.Debug("option chosen",
		zap.String("player", playerID),
		zap.String("prompt", prompt),
		zap.String("option", chosen.String()),
		zap.Int("offered", len(offered)),
	)
	if b.publish != nil {
		evt := rules.NewEvent(rules.EventOptionChosen, playerID, "")
		evt.Data = string(chosen.Kind())
		evt.Description = chosen.String()
		evt.Amount = len(offered)
		b.publish(evt)
	}
	return chosen
}

// Offer is Choose followed by applying the chosen option for playerID.
func (b *Broker) Offer(playerID string, provider DecisionProvider, prompt string, offered []Option) Option {
	chosen := b.Choose(playerID, provider, prompt, offered)
	if chosen != nil {
		chosen.Apply(b.target, playerID)
	}
	return chosen
}

func contains(offered []Option, chosen Option) bool {
	if chosen == nil {
		return false
	}
	for _, o := range offered {
		if o == chosen {
			return true
		}
	}
	return false
}
