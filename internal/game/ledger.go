package game

import (
	"context"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// record appends to the bounded resource log.
func (e *Engine) record(value int, res Resource, reason string) {
	st := e.st
	st.Log = append(st.Log, LedgerEntry{Value: value, Type: res, Reason: reason, Day: st.Day})
	if over := len(st.Log) - e.balance.LedgerSize; over > 0 {
		st.Log = append([]LedgerEntry(nil), st.Log[over:]...)
	}
}

// addEnergy changes energy within [0, EnergyMax]. A spend beyond the
// current energy is taken out of reputation at the exchange rate.
func (e *Engine) addEnergy(ctx context.Context, delta int, reason string) error {
	if delta == 0 {
		return nil
	}
	st := e.st
	old := st.Energy
	next, rest := SmartClamp(old+delta, 0, st.EnergyMax)
	st.Energy = next
	if next != old {
		e.record(next-old, ResourceEnergy, reason)
		e.log(log.NewResourceChangeEvent(st.DayIndex(), string(ResourceEnergy), old, next, reason))
	}
	if rest < 0 {
		debit := ceilDiv(-rest, e.balance.EnergyPerReputation)
		return e.addReputation(ctx, -debit, reason)
	}
	return nil
}

// addReputation changes reputation within [0, ReputationMax]. Any decline
// fires onReputationDecline; reaching zero ends the game at once.
func (e *Engine) addReputation(ctx context.Context, delta int, reason string) error {
	if delta == 0 {
		return nil
	}
	st := e.st
	old := st.Reputation
	next, _ := SmartClamp(old+delta, 0, e.balance.ReputationMax)
	st.Reputation = next
	if next != old {
		e.record(next-old, ResourceReputation, reason)
		e.log(log.NewResourceChangeEvent(st.DayIndex(), string(ResourceReputation), old, next, reason))
	}
	if next == 0 && !st.IsGameOver {
		st.IsGameOver, st.IsWon, st.Reason = true, false, ReasonReputation
		return nil
	}
	if delta < 0 {
		return e.triggerEvent(ctx, OnReputationDecline, reason)
	}
	return nil
}

// addMoney changes money, floored at zero. Reaching the target wins unless
// infinity mode is on.
func (e *Engine) addMoney(ctx context.Context, delta int, reason string) error {
	if delta == 0 {
		return nil
	}
	st := e.st
	old := st.Money
	next, _ := SmartClamp(old+delta, 0, Unbounded)
	st.Money = next
	if next != old {
		e.record(next-old, ResourceMoney, reason)
		e.log(log.NewResourceChangeEvent(st.DayIndex(), string(ResourceMoney), old, next, reason))
		if next > old {
			e.meta.LifetimeMoney += next - old
		}
	}
	if !st.InfinityMode && !st.IsGameOver && next >= e.balance.MoneyTarget {
		st.IsGameOver, st.IsWon, st.Reason = true, true, ReasonTarget
	}
	return nil
}

// applyGain pays out an effect's resources in a fixed order.
func (e *Engine) applyGain(ctx context.Context, g Gain, reason string) error {
	if err := e.addEnergy(ctx, g.Energy, reason); err != nil {
		return err
	}
	if err := e.addReputation(ctx, g.Reputation, reason); err != nil {
		return err
	}
	if err := e.addMoney(ctx, g.Money, reason); err != nil {
		return err
	}
	if g.Draw > 0 {
		if _, err := e.drawCard(ctx, g.Draw, DrawOptions{}); err != nil {
			return err
		}
	}
	return nil
}

// raiseEnergyMax lifts the energy cap up to the configured ceiling.
func (e *Engine) raiseEnergyMax(n int, reason string) {
	st := e.st
	old := st.EnergyMax
	st.EnergyMax, _ = SmartClamp(old+n, e.balance.EnergyMax, e.balance.EnergyMaxCap)
	if st.EnergyMax != old {
		e.log(log.NewResourceChangeEvent(st.DayIndex(), "max energy", old, st.EnergyMax, reason))
	}
}
