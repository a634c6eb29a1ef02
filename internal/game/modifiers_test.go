package game

import (
	"context"
	"testing"
)

func project(st *State, name string) *ResolvedCard {
	return Project(CardInstance{Name: name}, st, UsedSet{})
}

func TestDiscountModifier(t *testing.T) {
	st := testState()
	st.Modifiers = []Modifier{{Name: "discount", Params: ModifierParams{Amount: 2}, Once: true}}

	rc := project(st, "Knex")
	if rc.Effect.Cost != EnergyCost(2) {
		t.Errorf("Expected 2 energy, got %v", rc.Effect.Cost)
	}
	if len(rc.Modifiers) != 1 || rc.Modifiers[0].Name != "discount" {
		t.Errorf("Expected the discount to be recorded, got %+v", rc.Modifiers)
	}

	// Money costs are discounted in energy units.
	rc = project(st, "Vacation")
	if rc.Effect.Cost != MoneyCost(300) {
		t.Errorf("Expected $300, got %v", rc.Effect.Cost)
	}
}

func TestIdenticalModifiersFireOnce(t *testing.T) {
	st := testState()
	st.Modifiers = []Modifier{
		{Name: "discount", Params: ModifierParams{Amount: 2}, Once: true},
		{Name: "discount", Params: ModifierParams{Amount: 2}, Once: true},
	}
	rc := project(st, "Bug Bounty")
	if rc.Effect.Cost != EnergyCost(4) {
		t.Errorf("Expected only one discount to apply (4 energy), got %v", rc.Effect.Cost)
	}

	// Different parameters are different modifiers.
	st.Modifiers[1].Params.Amount = 1
	rc = project(st, "Bug Bounty")
	if rc.Effect.Cost != EnergyCost(3) {
		t.Errorf("Expected both discounts to apply (3 energy), got %v", rc.Effect.Cost)
	}
}

func TestModifierBucketsOrder(t *testing.T) {
	st := testState()
	// Inserted multiplicative first; additive still runs before it.
	st.Modifiers = []Modifier{
		{Name: "half-price", Once: true},
		{Name: "discount", Params: ModifierParams{Amount: 2}, Once: true},
	}
	rc := project(st, "Knex")
	if rc.Effect.Cost != EnergyCost(1) {
		t.Errorf("Expected (4-2)/2 = 1 energy, got %v", rc.Effect.Cost)
	}
}

func TestConvertToEnergyRunsFirst(t *testing.T) {
	st := testState()
	st.Modifiers = []Modifier{
		{Name: "discount", Params: ModifierParams{Amount: 1}, Once: true},
		{Name: "convert-to-energy", Once: true},
	}
	rc := project(st, "Processing")
	if rc.Effect.Cost != EnergyCost(1) {
		t.Errorf("Expected $200 -> 2 energy -> 1 energy, got %v", rc.Effect.Cost)
	}
}

func TestFamilyDiscount(t *testing.T) {
	st := testState()
	st.Modifiers = []Modifier{{Name: "discount", Params: ModifierParams{Amount: 1, Family: "js"}}}

	if rc := project(st, "Knex"); rc.Effect.Cost != EnergyCost(3) {
		t.Errorf("Expected js card at 3 energy, got %v", rc.Effect.Cost)
	}
	rc := project(st, "Freelance Gig")
	if rc.Effect.Cost != EnergyCost(5) {
		t.Errorf("Expected non-js card unchanged, got %v", rc.Effect.Cost)
	}
	if len(rc.Modifiers) != 0 {
		t.Errorf("Expected no modifier recorded, got %+v", rc.Modifiers)
	}
}

func TestFreeAndOvertime(t *testing.T) {
	st := testState()
	st.Modifiers = []Modifier{
		{Name: "free", Once: true},
		{Name: "overtime", Params: ModifierParams{Factor: 2}, Once: true},
	}
	rc := project(st, "Knex")
	if !rc.Effect.Cost.IsFree() {
		t.Errorf("Expected a free card, got %v", rc.Effect.Cost)
	}
	if rc.Effect.Gain.Money != 400 {
		t.Errorf("Expected doubled money gain, got %d", rc.Effect.Gain.Money)
	}
}

func TestModifierDoesNotMutateState(t *testing.T) {
	st := testState()
	st.Modifiers = []Modifier{{Name: "half-price", Once: true}}
	before := len(st.Modifiers)
	project(st, "Knex")
	project(st, "Knex")
	if len(st.Modifiers) != before {
		t.Error("Projection must not consume modifiers")
	}
}

func TestOnceModifierConsumedByPlay(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Knex", "Jest"}, []string{"Prettier"}, nil)
	withState(e, func(st *State) {
		st.Modifiers = []Modifier{
			{Name: "discount", Params: ModifierParams{Amount: 2}, Once: true},
			{Name: "discount", Params: ModifierParams{Amount: 1, Family: "career"}},
		}
	})

	if err := e.Play(context.Background(), "Knex", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	snap := e.Snapshot()
	if snap.Energy != 18 {
		t.Errorf("Expected 18 energy after a discounted Knex, got %d", snap.Energy)
	}
	if len(snap.Modifiers) != 1 || snap.Modifiers[0].Params.Family != "career" {
		t.Errorf("Expected only the persistent modifier left, got %+v", snap.Modifiers)
	}
}

func TestModifierCardActivates(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Stack Overflow", "Bug Bounty"}, []string{"Prettier"}, nil)

	ctx := context.Background()
	if err := e.Play(ctx, "Stack Overflow", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	snap := e.Snapshot()
	if len(snap.Modifiers) != 1 {
		t.Fatalf("Expected one active modifier, got %+v", snap.Modifiers)
	}
	if snap.Hand[0].Name != "Bug Bounty" || snap.Hand[0].Cost != EnergyCost(4) {
		t.Errorf("Expected Bug Bounty to show 4 energy, got %+v", snap.Hand[0])
	}
}
