package game

import (
	"context"
	"fmt"
	"strings"
)

// Gain is the resource payout of an effect, applied after the cost is paid.
// Negative values are penalties.
type Gain struct {
	Energy     int `json:"energy,omitempty"`
	Reputation int `json:"reputation,omitempty"`
	Money      int `json:"money,omitempty"`
	Draw       int `json:"draw,omitempty"`
}

func (g Gain) IsZero() bool {
	return g == Gain{}
}

// SelectionRequest describes an interactive pick the player must make
// before a card resolves.
type SelectionRequest struct {
	Prompt     string   `json:"prompt"`
	Pile       Pile     `json:"-"`
	Candidates []string `json:"candidates"`
	Min        int      `json:"min"`
	Max        int      `json:"max"`
}

// Effect is the fully resolved behavior of a card. It is derived on demand
// and never stored.
type Effect struct {
	Text           string
	Cost           Cost
	Gain           Gain
	Tags           []Tag
	NeedsPlayZone  bool
	WaitBeforePlay bool
	Upgrade        string

	// Condition gates whether the card can be played at all.
	Condition func(st *State, card *ResolvedCard) bool
	// Select, if set, asks the player to choose cards before the play.
	Select func(st *State, card *ResolvedCard) *SelectionRequest
	// OnPlayed runs after the cost is paid, before the gain is applied.
	OnPlayed func(ctx context.Context, e *Engine, card *ResolvedCard, selection []string) error
}

func (e *Effect) HasTag(t Tag) bool {
	for _, tag := range e.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

func (e *Effect) addTag(t Tag) {
	if !e.HasTag(t) {
		e.Tags = append(e.Tags, t)
	}
}

// clone returns a copy that modifiers may change without touching the
// original.
func (e *Effect) clone() *Effect {
	c := *e
	c.Tags = append([]Tag(nil), e.Tags...)
	return &c
}

// Describe renders the effect text followed by its resource payout.
func (e *Effect) Describe() string {
	var parts []string
	if e.Text != "" {
		parts = append(parts, e.Text)
	}
	g := e.Gain
	if g.Draw > 0 {
		parts = append(parts, fmt.Sprintf("Draw %d %s", g.Draw, plural(g.Draw, "card")))
	}
	if g.Energy != 0 {
		parts = append(parts, fmt.Sprintf("%+d energy", g.Energy))
	}
	if g.Reputation != 0 {
		parts = append(parts, fmt.Sprintf("%+d reputation", g.Reputation))
	}
	if g.Money > 0 {
		parts = append(parts, fmt.Sprintf("+$%d", g.Money))
	} else if g.Money < 0 {
		parts = append(parts, fmt.Sprintf("-$%d", -g.Money))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
