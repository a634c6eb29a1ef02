package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// GenerateOptions picks up to n catalog cards the player does not own yet.
// Cards already offered, tokens, and upgrades at max stack are excluded.
func (e *Engine) GenerateOptions(n int) []string {
	st := e.st
	pending := map[string]bool{}
	for _, offer := range st.Options {
		for _, name := range offer {
			pending[name] = true
		}
	}

	var pool []string
	for _, name := range CardNames() {
		if st.Owns(name) || pending[name] {
			continue
		}
		eff := Project(CardInstance{Name: name}, st, UsedSet{}).Effect
		if eff.HasTag(TagToken) {
			continue
		}
		if eff.Upgrade != "" && st.UpgradeMaxed(eff.Upgrade) {
			continue
		}
		pool = append(pool, name)
	}

	// Three Fisher-Yates passes over the sorted pool.
	for pass := 0; pass < 3; pass++ {
		for i := len(pool) - 1; i > 0; i-- {
			j := e.rng.Intn(i + 1)
			pool[i], pool[j] = pool[j], pool[i]
		}
	}
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}

// offerChoice queues a new pick-a-card offer, if anything is left to offer.
func (e *Engine) offerChoice() {
	options := e.GenerateOptions(e.balance.ChoiceOptions)
	if len(options) == 0 {
		return
	}
	e.st.Options = append(e.st.Options, options)
	e.log(log.NewChoiceOfferedEvent(e.st.DayIndex(), options))
}

// pickOption takes a card from the head offer into the hand, or on top of
// the draw pile when the hand is full.
func (e *Engine) pickOption(ctx context.Context, name string) error {
	release := e.acquire("pick " + name)
	defer release()

	st := e.st
	offer := st.Offer()
	if offer == nil {
		return ErrNoPendingChoice
	}
	found := false
	for _, o := range offer {
		if o == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotAnOption, name)
	}

	st.Options = st.Options[1:]
	if err := e.addToHand(NewInstance(LookupCard(name), e.rng), "picked"); err != nil {
		return err
	}
	e.log(log.NewChoicePickedEvent(st.DayIndex(), name))
	return nil
}

// skipOption drops the head offer.
func (e *Engine) skipOption(ctx context.Context) error {
	release := e.acquire("skip")
	defer release()

	if e.st.Offer() == nil {
		return ErrNoPendingChoice
	}
	e.st.Options = e.st.Options[1:]
	e.log(log.NewChoiceSkippedEvent(e.st.DayIndex()))
	return nil
}
