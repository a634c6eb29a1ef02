package game

import "testing"

func TestSmartClamp(t *testing.T) {
	tests := []struct {
		value, min, max int
		clamped, rest   int
	}{
		{5, 0, 10, 5, 0},
		{15, 0, 10, 10, 5},
		{-3, 0, 10, 0, -3},
		{7, 3, 1, 3, 4}, // max below min collapses to min
		{100, 0, Unbounded, 100, 0},
	}
	for _, tt := range tests {
		clamped, rest := SmartClamp(tt.value, tt.min, tt.max)
		if clamped != tt.clamped || rest != tt.rest {
			t.Errorf("SmartClamp(%d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.value, tt.min, tt.max, clamped, rest, tt.clamped, tt.rest)
		}
		if clamped+rest != tt.value {
			t.Errorf("SmartClamp(%d, ...) lost value: %d + %d", tt.value, clamped, rest)
		}
	}
}

func TestPriceForSurplus(t *testing.T) {
	b := DefaultBalance()

	cost, surplus := priceFor(EnergyCost(3), 1, b)
	if cost.Value != 2 || surplus != 0 {
		t.Errorf("Expected 2 energy and no surplus, got %v and %d", cost, surplus)
	}

	cost, surplus = priceFor(EnergyCost(3), 5, b)
	if !cost.IsFree() || surplus != 2 {
		t.Errorf("Expected a free card with 2 surplus, got %v and %d", cost, surplus)
	}

	cost, surplus = priceFor(MoneyCost(200), 3, b)
	if !cost.IsFree() || surplus != 1 {
		t.Errorf("Expected a free card with 1 surplus, got %v and %d", cost, surplus)
	}

	// Negative advantage raises the price.
	cost, _ = priceFor(MoneyCost(200), -1, b)
	if cost.Value != 300 {
		t.Errorf("Expected $300, got %v", cost)
	}
}

func TestEnergySpillsIntoMoney(t *testing.T) {
	st := testState()

	// Full energy: every point of Processing's energy becomes money.
	eff := Project(CardInstance{Name: "Processing"}, st, UsedSet{}).Effect
	if eff.Gain.Energy != 0 || eff.Gain.Money != 400 {
		t.Errorf("Expected 0 energy and $400 at full energy, got %+v", eff.Gain)
	}

	st.Energy = 10
	eff = Project(CardInstance{Name: "Processing"}, st, UsedSet{}).Effect
	if eff.Gain.Energy != 4 || eff.Gain.Money != 0 {
		t.Errorf("Expected 4 energy and no money, got %+v", eff.Gain)
	}

	st.Energy = 18
	eff = Project(CardInstance{Name: "Processing"}, st, UsedSet{}).Effect
	if eff.Gain.Energy != 2 || eff.Gain.Money != 200 {
		t.Errorf("Expected 2 energy and $200, got %+v", eff.Gain)
	}
}

func TestReputationSpillsIntoEnergy(t *testing.T) {
	st := testState()

	// Reputation is capped, so Jest's point converts to energy. The card's
	// own cost frees up the room for it.
	eff := Project(CardInstance{Name: "Jest"}, st, UsedSet{}).Effect
	if eff.Gain.Reputation != 0 || eff.Gain.Energy != 5 {
		t.Errorf("Expected 0 reputation and 5 energy, got %+v", eff.Gain)
	}

	st.Reputation = 5
	eff = Project(CardInstance{Name: "Jest"}, st, UsedSet{}).Effect
	if eff.Gain.Reputation != 1 || eff.Gain.Energy != 0 {
		t.Errorf("Expected 1 reputation, got %+v", eff.Gain)
	}
}

func TestDrawClampedToHandRoom(t *testing.T) {
	st := testState()
	st.Hand = commons([]string{"Prettier", "Knex", "Jest", "Processing", "Webpack", "Refactor", "Git Revert", "Bug Bounty"})

	// Hand is full: Prettier itself frees one slot, the second draw spills
	// into energy at the draw cost.
	st.Energy = 10
	eff := Project(CardInstance{Name: "Prettier"}, st, UsedSet{}).Effect
	if eff.Gain.Draw != 1 {
		t.Errorf("Expected 1 draw, got %d", eff.Gain.Draw)
	}
	if eff.Gain.Energy != st.Balance.DrawCost {
		t.Errorf("Expected %d energy from the spilled draw, got %d", st.Balance.DrawCost, eff.Gain.Energy)
	}
}
