package game

import "math"

// Outcome is the derived end state of a session.
type Outcome struct {
	Over   bool
	Won    bool
	Reason string
}

// CanAfford reports whether cost can be paid. An energy cost is affordable
// while the reputation it would spill into leaves at least one point.
func CanAfford(st *State, cost Cost) bool {
	if cost.IsFree() {
		return true
	}
	if cost.Type == CostMoney {
		return st.Money >= cost.Value
	}
	shortfall := cost.Value - st.Energy
	if shortfall <= 0 {
		return true
	}
	return ceilDiv(shortfall, st.Balance.EnergyPerReputation) < st.Reputation
}

// CanDraw reports whether the paid fallback draw is available.
func CanDraw(st *State) bool {
	return len(st.Draw) > 0 && !st.HandFull() && CanAfford(st, EnergyCost(st.Balance.DrawCost))
}

// Evaluate derives the outcome from a settled state. It does not mutate st.
// A blocked hand only loses once the draw cost is out of reach: while it is
// affordable a discard makes room and a recycle refills an empty draw pile.
func Evaluate(st *State) Outcome {
	if st.Reputation <= 0 {
		return Outcome{Over: true, Reason: ReasonReputation}
	}
	if len(st.Draw) == 0 && len(st.Hand) == 0 {
		return Outcome{Over: true, Reason: ReasonMill}
	}
	if handBlocked(st) && !CanAfford(st, EnergyCost(st.Balance.DrawCost)) && (st.HandFull() || len(st.Draw) == 0) {
		if len(st.Draw) == 0 {
			return Outcome{Over: true, Reason: ReasonMillLock}
		}
		return Outcome{Over: true, Reason: ReasonSoftLock}
	}
	if !st.InfinityMode && st.Money >= st.Balance.MoneyTarget {
		return Outcome{Over: true, Won: true, Reason: ReasonTarget}
	}
	return Outcome{}
}

// handBlocked reports whether no card in hand can be played right now.
func handBlocked(st *State) bool {
	for _, ci := range st.Hand {
		if Playable(st, Project(ci, st, UsedSet{})) {
			return false
		}
	}
	return true
}

// UpgradeInvestment is the energy-equivalent sunk into upgrades.
func UpgradeInvestment(st *State) int {
	total := 0
	for _, up := range st.Upgrades {
		total += up.Cumul * LookupUpgrade(up.Name).Cost
	}
	return total
}

// DayBonus rewards finishing early.
func DayBonus(st *State) float64 {
	day := st.DayIndex()
	switch {
	case day < st.Balance.DaysPerMonth:
		return 2
	case day < 2*st.Balance.DaysPerMonth:
		return 1.5
	default:
		return 1
	}
}

// Score weighs every resource in energy units, applies the day and
// difficulty multipliers and dampens by progress towards the target.
func Score(st *State) int {
	b := st.Balance
	raw := float64(st.Energy) +
		float64(st.Reputation*b.EnergyPerReputation) +
		float64(st.Money)/float64(b.MoneyPerEnergy) +
		float64(UpgradeInvestment(st))
	progress := math.Min(1, float64(st.Money)/float64(b.MoneyTarget))
	return int(math.Round(raw * DayBonus(st) * st.Difficulty.ScoreMultiplier() * progress))
}
