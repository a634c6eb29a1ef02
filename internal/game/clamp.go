package game

import "math"

// Unbounded is used as the max of a clamp with no upper bound.
const Unbounded = math.MaxInt

// SmartClamp clamps value into [min, max] and also returns what was cut
// off: rest = value - clamped. A positive rest overflowed the max, a
// negative rest fell short of the min.
func SmartClamp(value, min, max int) (clamped, rest int) {
	if max < min {
		max = min
	}
	clamped = value
	if clamped < min {
		clamped = min
	}
	if clamped > max {
		clamped = max
	}
	return clamped, value - clamped
}

// energyRoom is how much energy a card can still grant once its own cost
// has been paid.
func energyRoom(live *State, cost Cost, pending int) int {
	energy := live.Energy
	if cost.Type == CostEnergy {
		energy -= cost.Value
		if energy < 0 {
			energy = 0
		}
	}
	room := live.EnergyMax - energy - pending
	if room < 0 {
		return 0
	}
	return room
}

// spillEnergy adds extra energy to g, capped by the room left under the
// energy cap; whatever does not fit is paid out as money.
func spillEnergy(live *State, cost Cost, g *Gain, extra int) {
	if extra <= 0 {
		return
	}
	energy, overflow := SmartClamp(extra, 0, energyRoom(live, cost, g.Energy))
	g.Energy += energy
	g.Money += overflow * live.Balance.MoneyPerEnergy
}
