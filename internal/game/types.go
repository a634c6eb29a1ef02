package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Category int

const (
	CategoryAction Category = iota
	CategorySupport
)

func (c Category) String() string {
	if c == CategoryAction {
		return "action"
	}
	return "support"
}

type CostType int

const (
	CostEnergy CostType = iota
	CostMoney
)

func (t CostType) String() string {
	if t == CostMoney {
		return "money"
	}
	return "energy"
}

func (t CostType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *CostType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "energy":
		*t = CostEnergy
	case "money":
		*t = CostMoney
	default:
		return fmt.Errorf("unknown cost type %q", string(b))
	}
	return nil
}

// Difficulty shifts every card's advantage. The zero value is normal.
type Difficulty int

const (
	DifficultyNormal Difficulty = iota
	DifficultyEasy
	DifficultyHard
	DifficultyExpert
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyHard:
		return "hard"
	case DifficultyExpert:
		return "expert"
	default:
		return "normal"
	}
}

// Bonus is the advantage offset every card receives at this difficulty.
func (d Difficulty) Bonus() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return -1
	case DifficultyExpert:
		return -2
	default:
		return 0
	}
}

// ScoreMultiplier scales the final score.
func (d Difficulty) ScoreMultiplier() float64 {
	switch d {
	case DifficultyEasy:
		return 0.75
	case DifficultyHard:
		return 1.5
	case DifficultyExpert:
		return 2
	default:
		return 1
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "", "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	case "expert":
		return DifficultyExpert, nil
	}
	return DifficultyNormal, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Pile int

const (
	PileDraw Pile = iota
	PileHand
	PileDiscard
	PilePlayZone
)

func (p Pile) String() string {
	switch p {
	case PileDraw:
		return "draw"
	case PileHand:
		return "hand"
	case PileDiscard:
		return "discard"
	case PilePlayZone:
		return "playZone"
	default:
		return "none"
	}
}

// Tag marks an effect with behavior the stack manager or UI cares about.
type Tag string

const (
	TagEphemeral  Tag = "ephemeral"
	TagRecycle    Tag = "recycle"
	TagDraw       Tag = "draw"
	TagDiscard    Tag = "discard"
	TagUpgrade    Tag = "upgrade"
	TagToken      Tag = "token"
	TagEnergy     Tag = "energy"
	TagMoney      Tag = "money"
	TagReputation Tag = "reputation"
	TagModifier   Tag = "modifier"
)

// Resource names the three resource pools tracked by the ledger.
type Resource string

const (
	ResourceEnergy     Resource = "energy"
	ResourceReputation Resource = "reputation"
	ResourceMoney      Resource = "money"
)

// LifecycleEvent names the hooks upgrades can subscribe to.
type LifecycleEvent string

const (
	OnPlay              LifecycleEvent = "onPlay"
	OnDraw              LifecycleEvent = "onDraw"
	OnDaily             LifecycleEvent = "daily"
	OnWeekly            LifecycleEvent = "weekly"
	OnMonthly           LifecycleEvent = "monthly"
	OnEmptyHand         LifecycleEvent = "onEmptyHand"
	OnReputationDecline LifecycleEvent = "onReputationDecline"
	OnUpgradeAcquired   LifecycleEvent = "onUpgradeAcquired"
)

// Game-over reasons.
const (
	ReasonReputation = "reputation"
	ReasonMill       = "mill"
	ReasonMillLock   = "mill-lock"
	ReasonSoftLock   = "soft-lock"
	ReasonTarget     = "target"
)

// --- Costs ---

// Cost is what playing a card takes out of the ledger.
type Cost struct {
	Type  CostType `json:"type"`
	Value int      `json:"value"`
}

func EnergyCost(v int) Cost { return Cost{Type: CostEnergy, Value: v} }
func MoneyCost(v int) Cost  { return Cost{Type: CostMoney, Value: v} }

func (c Cost) IsFree() bool {
	return c.Value <= 0
}

// EnergyEquivalent converts the cost to energy units; money rounds up.
func (c Cost) EnergyEquivalent(b Balance) int {
	if c.Value <= 0 {
		return 0
	}
	if c.Type == CostMoney {
		return ceilDiv(c.Value, b.MoneyPerEnergy)
	}
	return c.Value
}

func (c Cost) String() string {
	if c.IsFree() {
		return "free"
	}
	if c.Type == CostMoney {
		return fmt.Sprintf("$%d", c.Value)
	}
	return fmt.Sprintf("%d energy", c.Value)
}

// --- Card definition & instance ---

// EffectBuilder derives a card's effect from its advantage and the live state.
type EffectBuilder func(advantage int, live *State) *Effect

// Card is an immutable catalog entry.
type Card struct {
	Name       string
	Category   Category
	Families   []string
	BaseRarity int
	Build      EffectBuilder
}

func (c *Card) HasFamily(family string) bool {
	for _, f := range c.Families {
		if f == family {
			return true
		}
	}
	return false
}

// CardInstance is the compact, persisted representation of a card in a pile.
type CardInstance struct {
	Name          string `json:"name"`
	VisualState   string `json:"visualState,omitempty"`
	InitialRarity int    `json:"initialRarity"`
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
