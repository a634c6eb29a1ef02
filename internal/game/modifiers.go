package game

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ModifierPriority orders modifiers into buckets; lower runs first.
type ModifierPriority int

const (
	PriorityFirst ModifierPriority = iota
	PriorityAdditive
	PriorityMultiplicative
	PriorityLast
)

// ModifierParams is the parameter payload of a modifier instance. It is part
// of the modifier's identity.
type ModifierParams struct {
	Amount int     `json:"amount,omitempty"`
	Factor float64 `json:"factor,omitempty"`
	Family string  `json:"family,omitempty"`
}

// Modifier is an active global card modifier.
type Modifier struct {
	Name   string         `json:"name"`
	Params ModifierParams `json:"params"`
	Reason string         `json:"reason,omitempty"`
	// Once modifiers are consumed by the play they apply to.
	Once bool `json:"once,omitempty"`
}

// Key is the structural identity used by the once-per-evaluation rule.
func (m Modifier) Key() string {
	params, _ := json.Marshal(m.Params)
	return m.Name + string(params)
}

// ModifierDef is a registered transform over a resolved card.
type ModifierDef struct {
	Name        string
	Priority    ModifierPriority
	Description func(p ModifierParams) string
	Condition   func(card *ResolvedCard, st *State, p ModifierParams) bool
	Use         func(card *ResolvedCard, st *State, p ModifierParams) *ResolvedCard
}

// UsedSet records which modifier identities already fired in one
// resolution.
type UsedSet map[string]bool

var ModifierRegistry map[string]*ModifierDef

func init() {
	ModifierRegistry = map[string]*ModifierDef{}
	for _, def := range []*ModifierDef{
		{
			Name:     "convert-to-energy",
			Priority: PriorityFirst,
			Description: func(p ModifierParams) string {
				return "Money costs are paid in energy"
			},
			Condition: func(card *ResolvedCard, st *State, p ModifierParams) bool {
				return card.Effect.Cost.Type == CostMoney && !card.Effect.Cost.IsFree()
			},
			Use: func(card *ResolvedCard, st *State, p ModifierParams) *ResolvedCard {
				return card.withCost(EnergyCost(card.Effect.Cost.EnergyEquivalent(st.Balance)))
			},
		},
		{
			Name:     "discount",
			Priority: PriorityAdditive,
			Description: func(p ModifierParams) string {
				if p.Family != "" {
					return fmt.Sprintf("-%d cost on %s cards", p.Amount, p.Family)
				}
				return fmt.Sprintf("-%d cost", p.Amount)
			},
			Condition: func(card *ResolvedCard, st *State, p ModifierParams) bool {
				if card.Effect.Cost.IsFree() {
					return false
				}
				return p.Family == "" || card.Def.HasFamily(p.Family)
			},
			Use: func(card *ResolvedCard, st *State, p ModifierParams) *ResolvedCard {
				cost := card.Effect.Cost
				step := 1
				if cost.Type == CostMoney {
					step = st.Balance.MoneyPerEnergy
				}
				cost.Value, _ = SmartClamp(cost.Value-p.Amount*step, 0, Unbounded)
				return card.withCost(cost)
			},
		},
		{
			Name:     "half-price",
			Priority: PriorityMultiplicative,
			Description: func(p ModifierParams) string {
				return "Half price"
			},
			Condition: func(card *ResolvedCard, st *State, p ModifierParams) bool {
				return !card.Effect.Cost.IsFree()
			},
			Use: func(card *ResolvedCard, st *State, p ModifierParams) *ResolvedCard {
				cost := card.Effect.Cost
				cost.Value /= 2
				return card.withCost(cost)
			},
		},
		{
			Name:     "overtime",
			Priority: PriorityMultiplicative,
			Description: func(p ModifierParams) string {
				return fmt.Sprintf("Money and energy gains x%g", p.Factor)
			},
			Condition: func(card *ResolvedCard, st *State, p ModifierParams) bool {
				g := card.Effect.Gain
				return p.Factor > 0 && (g.Money > 0 || g.Energy > 0)
			},
			Use: func(card *ResolvedCard, st *State, p ModifierParams) *ResolvedCard {
				out := card.clone()
				g := &out.Effect.Gain
				if g.Money > 0 {
					g.Money = int(math.Round(float64(g.Money) * p.Factor))
				}
				if g.Energy > 0 {
					g.Energy = int(math.Round(float64(g.Energy) * p.Factor))
				}
				return out
			},
		},
		{
			Name:     "free",
			Priority: PriorityLast,
			Description: func(p ModifierParams) string {
				return "Free"
			},
			Condition: func(card *ResolvedCard, st *State, p ModifierParams) bool {
				return !card.Effect.Cost.IsFree()
			},
			Use: func(card *ResolvedCard, st *State, p ModifierParams) *ResolvedCard {
				cost := card.Effect.Cost
				cost.Value = 0
				return card.withCost(cost)
			},
		},
	} {
		ModifierRegistry[def.Name] = def
	}
}

// LookupModifier returns the modifier definition. Panics if not found.
func LookupModifier(name string) *ModifierDef {
	def, ok := ModifierRegistry[name]
	if !ok {
		names := make([]string, 0, len(ModifierRegistry))
		for n := range ModifierRegistry {
			names = append(names, n)
		}
		panic(notFound("modifier", name, names))
	}
	return def
}

// ApplyGlobalModifiers folds every active modifier over card, bucketed by
// priority. Each condition sees the card as transformed so far. Modifiers
// already in used are skipped; the ones that fire are added to used and
// returned.
func ApplyGlobalModifiers(card *ResolvedCard, st *State, used UsedSet) (*ResolvedCard, []Modifier) {
	if len(st.Modifiers) == 0 {
		return card, nil
	}
	ordered := make([]Modifier, len(st.Modifiers))
	copy(ordered, st.Modifiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return LookupModifier(ordered[i].Name).Priority < LookupModifier(ordered[j].Name).Priority
	})

	var fired []Modifier
	for _, m := range ordered {
		key := m.Key()
		if used[key] {
			continue
		}
		def := LookupModifier(m.Name)
		if def.Condition != nil && !def.Condition(card, st, m.Params) {
			continue
		}
		card = def.Use(card, st, m.Params)
		used[key] = true
		fired = append(fired, m)
	}
	if len(fired) > 0 {
		card = card.clone()
		card.Modifiers = append(card.Modifiers, fired...)
	}
	return card, fired
}

// consumeModifiers drops the one-shot modifiers that fired on a play.
func (st *State) consumeModifiers(fired []Modifier) {
	for _, f := range fired {
		if !f.Once {
			continue
		}
		for i, m := range st.Modifiers {
			if m.Once && m.Key() == f.Key() {
				st.Modifiers = append(st.Modifiers[:i], st.Modifiers[i+1:]...)
				break
			}
		}
	}
}
