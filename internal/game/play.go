package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// PlayOptions alters a play.
type PlayOptions struct {
	// Free skips the affordability check and the cost.
	Free bool
}

// payCost takes the cost out of the ledger. Energy shortfalls spill into
// reputation.
func (e *Engine) payCost(ctx context.Context, cost Cost, reason string) error {
	if cost.IsFree() {
		return nil
	}
	if cost.Type == CostMoney {
		return e.addMoney(ctx, -cost.Value, reason)
	}
	return e.addEnergy(ctx, -cost.Value, reason)
}

// playCard plays a card from the hand.
func (e *Engine) playCard(ctx context.Context, name string, opts PlayOptions) error {
	release := e.acquire("play " + name)
	defer release()

	st := e.st
	idx := st.HandIndex(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, name)
	}

	used := UsedSet{}
	card := Project(st.Hand[idx], st, used)
	eff := card.Effect
	if eff.Condition != nil && !eff.Condition(st, card) {
		return fmt.Errorf("%w: %s", ErrConditionNotMet, name)
	}
	if !opts.Free && !CanAfford(st, eff.Cost) {
		return fmt.Errorf("%w: %s costs %s", ErrCannotAfford, name, eff.Cost)
	}

	var selection []string
	if eff.Select != nil {
		req := eff.Select(st, card)
		if req != nil {
			sel, err := e.selector.Select(ctx, name, *req)
			if err != nil {
				return err
			}
			if sel == nil {
				return fmt.Errorf("%w: %s", ErrSelectionCanceled, name)
			}
			selection = sel
		}
	}

	from := PileHand
	if eff.NeedsPlayZone {
		st.putTop(PilePlayZone, st.take(PileHand, st.HandIndex(name)))
		from = PilePlayZone
	}
	if eff.WaitBeforePlay {
		if err := e.pace(ctx, playDelay); err != nil {
			return err
		}
	}

	cost := eff.Cost
	if opts.Free {
		cost = Cost{Type: cost.Type}
	}
	if err := e.payCost(ctx, cost, name); err != nil {
		return err
	}

	remove := eff.HasTag(TagEphemeral)
	if eff.Upgrade != "" {
		cumul := 0
		if up := st.Upgrade(eff.Upgrade); up != nil {
			cumul = up.Cumul
		}
		// The card leaves the game with the stack that maxes its upgrade.
		if cumul+1 >= LookupUpgrade(eff.Upgrade).Max {
			remove = true
		}
	}

	_, at := st.Locate(name)
	ci := st.take(from, at)
	switch {
	case remove:
		e.log(log.NewRemoveEvent(st.DayIndex(), name, "spent"))
	case eff.HasTag(TagRecycle):
		st.putBottom(PileDraw, ci)
	default:
		st.putTop(PileDiscard, ci)
	}

	st.consumeModifiers(card.Modifiers)
	for _, m := range card.Modifiers {
		e.log(log.NewModifierFiredEvent(st.DayIndex(), name, m.Name))
	}
	e.log(log.NewPlayEvent(st.DayIndex(), name, cost.String()))
	e.cues.Play(CuePlay)

	if eff.OnPlayed != nil {
		if err := eff.OnPlayed(ctx, e, card, selection); err != nil {
			return err
		}
	}
	if err := e.applyGain(ctx, eff.Gain, name); err != nil {
		return err
	}
	if err := e.triggerEvent(ctx, OnPlay, name); err != nil {
		return err
	}

	if len(st.Hand) == 0 && !st.IsGameOver {
		if err := e.triggerEvent(ctx, OnEmptyHand, name); err != nil {
			return err
		}
		if _, err := e.drawCard(ctx, e.balance.InitialHandSize, DrawOptions{}); err != nil {
			return err
		}
	}

	return e.advanceTime(ctx, cost.EnergyEquivalent(e.balance))
}

// addModifier activates a global modifier.
func (e *Engine) addModifier(m Modifier) {
	e.st.Modifiers = append(e.st.Modifiers, m)
	e.log(log.NewModifierAddedEvent(e.st.DayIndex(), m.Name, m.Reason))
}
