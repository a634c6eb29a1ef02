package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// UpgradeDef is a passive upgrade that reacts to a lifecycle event.
type UpgradeDef struct {
	Name        string
	Description string
	Event       LifecycleEvent
	Max         int
	// Cost is the energy-equivalent invested per stack; it feeds the score.
	Cost      int
	Condition func(st *State, up *Upgrade) bool
	OnTrigger func(ctx context.Context, e *Engine, up *Upgrade, reason string) error
}

// Upgrade is an acquired upgrade. Invariant: 0 < Cumul <= Max.
type Upgrade struct {
	Name  string `json:"name"`
	Cumul int    `json:"cumul"`
}

// UpgradeRegistry holds every upgrade definition.
var UpgradeRegistry map[string]*UpgradeDef

func init() {
	UpgradeRegistry = map[string]*UpgradeDef{}
	for _, def := range []*UpgradeDef{
		{
			Name:        "Coffee Machine",
			Description: "+1 energy per stack every day",
			Event:       OnDaily,
			Max:         3,
			Cost:        3,
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addEnergy(ctx, up.Cumul, up.Name)
			},
		},
		{
			Name:        "Mentorship",
			Description: "+1 reputation per stack every week",
			Event:       OnWeekly,
			Max:         2,
			Cost:        5,
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addReputation(ctx, up.Cumul, up.Name)
			},
		},
		{
			Name:        "Savings Account",
			Description: "5% interest per stack every month",
			Event:       OnMonthly,
			Max:         3,
			Cost:        8,
			Condition: func(st *State, up *Upgrade) bool {
				return st.Money > 0
			},
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addMoney(ctx, e.st.Money*up.Cumul/20, up.Name)
			},
		},
		{
			Name:        "Ergonomic Chair",
			Description: "+2 energy per stack when your hand runs empty",
			Event:       OnEmptyHand,
			Max:         2,
			Cost:        4,
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addEnergy(ctx, 2*up.Cumul, up.Name)
			},
		},
		{
			Name:        "Personal Brand",
			Description: "+$100 per stack whenever reputation drops",
			Event:       OnReputationDecline,
			Max:         3,
			Cost:        6,
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addMoney(ctx, 100*up.Cumul, up.Name)
			},
		},
		{
			Name:        "Automation",
			Description: "+$10 per stack for every card played",
			Event:       OnPlay,
			Max:         5,
			Cost:        10,
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addMoney(ctx, 10*up.Cumul, up.Name)
			},
		},
		{
			Name:        "Second Monitor",
			Description: "+$5 per stack for every card drawn",
			Event:       OnDraw,
			Max:         3,
			Cost:        4,
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addMoney(ctx, 5*up.Cumul, up.Name)
			},
		},
		{
			Name:        "Network Effects",
			Description: "+1 reputation whenever an upgrade is installed",
			Event:       OnUpgradeAcquired,
			Max:         1,
			Cost:        15,
			OnTrigger: func(ctx context.Context, e *Engine, up *Upgrade, reason string) error {
				return e.addReputation(ctx, up.Cumul, up.Name)
			},
		},
	} {
		UpgradeRegistry[def.Name] = def
	}
}

// LookupUpgrade returns the upgrade definition. Panics if not found.
func LookupUpgrade(name string) *UpgradeDef {
	def, ok := UpgradeRegistry[name]
	if !ok {
		panic(notFound("upgrade", name, UpgradeNames()))
	}
	return def
}

func UpgradeNames() []string {
	names := make([]string, 0, len(UpgradeRegistry))
	for name := range UpgradeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// totalUpgradeStacks is the sum of every upgrade's max stack.
func totalUpgradeStacks() int {
	n := 0
	for _, def := range UpgradeRegistry {
		n += def.Max
	}
	return n
}

// acquireUpgrade creates the upgrade on first acquisition and stacks it
// afterwards.
func (e *Engine) acquireUpgrade(ctx context.Context, name string) error {
	release := e.acquire("upgrade " + name)
	defer release()

	def := LookupUpgrade(name)
	up := e.st.Upgrade(name)
	switch {
	case up == nil:
		e.st.Upgrades = append(e.st.Upgrades, Upgrade{Name: name, Cumul: 1})
		up = &e.st.Upgrades[len(e.st.Upgrades)-1]
	case up.Cumul >= def.Max:
		return fmt.Errorf("%w: %s", ErrUpgradeMaxed, name)
	default:
		up.Cumul++
	}
	e.log(log.NewUpgradeAcquiredEvent(e.st.DayIndex(), name, up.Cumul, def.Max))
	e.cues.Play(CueUpgrade)
	return e.triggerEvent(ctx, OnUpgradeAcquired, name)
}
