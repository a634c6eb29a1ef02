package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// triggerEvent runs every acquired upgrade listening to event, one after
// the other in acquisition order.
func (e *Engine) triggerEvent(ctx context.Context, event LifecycleEvent, reason string) error {
	release := e.acquire(string(event))
	defer release()

	upgrades := append([]Upgrade(nil), e.st.Upgrades...)
	for _, snapshot := range upgrades {
		def := LookupUpgrade(snapshot.Name)
		if def.Event != event {
			continue
		}
		up := e.st.Upgrade(snapshot.Name)
		if up == nil {
			continue
		}
		if def.Condition != nil && !def.Condition(e.st, up) {
			continue
		}
		e.log(log.NewUpgradeTriggerEvent(e.st.DayIndex(), def.Name, string(event)))
		if err := def.OnTrigger(ctx, e, up, reason); err != nil {
			return fmt.Errorf("%s on %s: %w", def.Name, event, err)
		}
	}
	return nil
}

// completion is the share of content owned, in [0, 1]: distinct cards in
// piles plus upgrade stacks, over the catalog size plus every max stack.
func (e *Engine) completion() float64 {
	owned := e.st.CardCount()
	for _, up := range e.st.Upgrades {
		owned += up.Cumul
	}
	total := len(CardRegistry) + totalUpgradeStacks()
	if total == 0 {
		return 0
	}
	c := float64(owned) / float64(total)
	if c > 1 {
		return 1
	}
	return c
}

// advanceTime converts spent energy into days. Every day boundary crossed
// fires daily, every week boundary also fires weekly and queues a new
// offer, and every month boundary raises inflation and fires monthly.
func (e *Engine) advanceTime(ctx context.Context, energySpent int) error {
	if energySpent <= 0 {
		return nil
	}
	release := e.acquire("time")
	defer release()

	st := e.st
	from := st.DayIndex()
	st.Day += float64(energySpent) * (1 + e.completion()) / float64(e.balance.EnergyPerDay)
	to := st.DayIndex()

	for day := from + 1; day <= to; day++ {
		if st.IsGameOver {
			return nil
		}
		e.log(log.NewDayEvent(day))
		if err := e.addEnergy(ctx, e.balance.DailyEnergy, "new day"); err != nil {
			return err
		}
		if err := e.triggerEvent(ctx, OnDaily, "new day"); err != nil {
			return err
		}
		if day%e.balance.DaysPerWeek == 0 {
			week := day / e.balance.DaysPerWeek
			e.log(log.NewWeekEvent(day, week))
			if err := e.announce(ctx, fmt.Sprintf("Week %d", week+1)); err != nil {
				return err
			}
			e.offerChoice()
			if err := e.triggerEvent(ctx, OnWeekly, "new week"); err != nil {
				return err
			}
		}
		if day%e.balance.DaysPerMonth == 0 {
			month := day / e.balance.DaysPerMonth
			st.Inflation += e.balance.InflationStep
			e.log(log.NewMonthEvent(day, month))
			e.log(log.NewInflationEvent(day, st.Inflation))
			if err := e.announce(ctx, fmt.Sprintf("Month %d", month+1)); err != nil {
				return err
			}
			if err := e.triggerEvent(ctx, OnMonthly, "new month"); err != nil {
				return err
			}
		}
	}
	return nil
}
