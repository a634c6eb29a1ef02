package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// DrawOptions narrows a draw.
type DrawOptions struct {
	FromDiscard bool
	// Filter keeps only matching cards; matching cards are surfaced to the
	// top of the source pile before the draw.
	Filter   func(CardInstance) bool
	Category *Category
	// Paid draws cost Balance.DrawCost energy and advance time.
	Paid bool
}

// DiscardOptions narrows a discard. Names, when set, are discarded in order;
// otherwise Count cards are taken from the end of the hand, or at random.
type DiscardOptions struct {
	Names  []string
	Count  int
	ToDraw bool
	Random bool
	Filter func(CardInstance) bool
}

// RecycleOptions narrows a recycle from the discard pile.
type RecycleOptions struct {
	Count  int
	Filter func(CardInstance) bool
}

func (o DrawOptions) matches(ci CardInstance) bool {
	if o.Filter != nil && !o.Filter(ci) {
		return false
	}
	if o.Category != nil && LookupCard(ci.Name).Category != *o.Category {
		return false
	}
	return true
}

func (o DrawOptions) filtered() bool {
	return o.Filter != nil || o.Category != nil
}

// surface reorders pile so matching cards sit on top, keeping the relative
// order of both groups. It returns how many cards matched.
func surface(pile []CardInstance, match func(CardInstance) bool) int {
	var rest, hits []CardInstance
	for _, ci := range pile {
		if match(ci) {
			hits = append(hits, ci)
		} else {
			rest = append(rest, ci)
		}
	}
	copy(pile, append(rest, hits...))
	return len(hits)
}

// drawCard moves up to count cards from the top of the draw (or discard)
// pile into the hand. Draws silently truncate to the room left in hand.
func (e *Engine) drawCard(ctx context.Context, count int, opts DrawOptions) ([]string, error) {
	release := e.acquire("draw")
	defer release()

	st := e.st
	src := PileDraw
	if opts.FromDiscard {
		src = PileDiscard
	}
	pile := st.pile(src)

	if opts.Paid {
		if len(*pile) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyPile, src)
		}
		if st.HandFull() {
			return nil, ErrHandFull
		}
		if !CanAfford(st, EnergyCost(e.balance.DrawCost)) {
			return nil, fmt.Errorf("%w: draw costs %d energy", ErrCannotAfford, e.balance.DrawCost)
		}
		if err := e.addEnergy(ctx, -e.balance.DrawCost, "draw"); err != nil {
			return nil, err
		}
	}

	available := len(*pile)
	if opts.filtered() {
		available = surface(*pile, opts.matches)
	}
	room := e.balance.MaxHandSize - len(st.Hand)
	n := min(count, room, available)

	var drawn []string
	for i := 0; i < n; i++ {
		ci := st.take(src, len(*pile)-1)
		st.putTop(PileHand, ci)
		drawn = append(drawn, ci.Name)
		e.log(log.NewDrawEvent(st.DayIndex(), ci.Name))
	}
	if len(drawn) > 0 {
		e.sortHand()
		e.cues.Play(CueDraw)
	}
	for range drawn {
		if err := e.triggerEvent(ctx, OnDraw, "draw"); err != nil {
			return drawn, err
		}
	}
	if opts.Paid {
		if err := e.advanceTime(ctx, e.balance.DrawCost); err != nil {
			return drawn, err
		}
	}
	return drawn, nil
}

// discardCard moves hand cards to the discard pile, or to the bottom of the
// draw pile with ToDraw.
func (e *Engine) discardCard(ctx context.Context, opts DiscardOptions) error {
	release := e.acquire("discard")
	defer release()

	st := e.st
	var names []string
	if len(opts.Names) > 0 {
		for _, name := range opts.Names {
			if st.HandIndex(name) < 0 {
				return fmt.Errorf("%w: %s", ErrCardNotInHand, name)
			}
		}
		names = opts.Names
	} else {
		var eligible []string
		for _, ci := range st.Hand {
			if opts.Filter == nil || opts.Filter(ci) {
				eligible = append(eligible, ci.Name)
			}
		}
		if opts.Random {
			e.rng.Shuffle(len(eligible), func(i, j int) {
				eligible[i], eligible[j] = eligible[j], eligible[i]
			})
		} else {
			// Most expensive cards sit at the end of the sorted hand.
			for i, j := 0, len(eligible)-1; i < j; i, j = i+1, j-1 {
				eligible[i], eligible[j] = eligible[j], eligible[i]
			}
		}
		names = eligible[:min(opts.Count, len(eligible))]
	}

	for _, name := range names {
		ci := st.take(PileHand, st.HandIndex(name))
		if opts.ToDraw {
			st.putBottom(PileDraw, ci)
		} else {
			st.putTop(PileDiscard, ci)
		}
		e.log(log.NewDiscardEvent(st.DayIndex(), name, opts.ToDraw))
	}
	if len(names) > 0 {
		e.cues.Play(CueDiscard)
	}
	return nil
}

// recycleCard moves cards from the top of the discard pile to the bottom of
// the draw pile.
func (e *Engine) recycleCard(ctx context.Context, opts RecycleOptions) ([]string, error) {
	release := e.acquire("recycle")
	defer release()

	st := e.st
	count := opts.Count
	if count <= 0 {
		count = 1
	}
	var moved []string
	for i := len(st.Discard) - 1; i >= 0 && len(moved) < count; i-- {
		ci := st.Discard[i]
		if opts.Filter != nil && !opts.Filter(ci) {
			continue
		}
		st.take(PileDiscard, i)
		st.putBottom(PileDraw, ci)
		moved = append(moved, ci.Name)
		e.log(log.NewRecycleEvent(st.DayIndex(), ci.Name))
	}
	return moved, nil
}

// removeCard takes a card out of the game entirely.
func (e *Engine) removeCard(name, reason string) bool {
	p, idx := e.st.Locate(name)
	if idx < 0 {
		return false
	}
	e.st.take(p, idx)
	e.log(log.NewRemoveEvent(e.st.DayIndex(), name, reason))
	return true
}

// addToHand puts a new card in the hand, or on top of the draw pile when
// the hand is full.
func (e *Engine) addToHand(ci CardInstance, reason string) error {
	if e.st.Owns(ci.Name) {
		return fmt.Errorf("%w: %s", ErrDuplicateCard, ci.Name)
	}
	if e.st.HandFull() {
		e.st.putTop(PileDraw, ci)
		return nil
	}
	e.st.putTop(PileHand, ci)
	e.sortHand()
	e.log(log.NewAddToHandEvent(e.st.DayIndex(), ci.Name, reason))
	return nil
}

// spawnToken creates a token card.
func (e *Engine) spawnToken(ctx context.Context, name string) error {
	release := e.acquire("spawn " + name)
	defer release()
	return e.addToHand(NewInstance(LookupCard(name), e.rng), "token")
}

// sortHand orders the hand: action before support, free before paid, then
// by ascending energy-equivalent cost. The sort is stable.
func (e *Engine) sortHand() {
	st := e.st
	type key struct {
		category Category
		paid     bool
		cost     int
	}
	keys := make(map[string]key, len(st.Hand))
	for _, ci := range st.Hand {
		rc := Project(ci, st, UsedSet{})
		cost := rc.Effect.Cost
		keys[ci.Name] = key{rc.Def.Category, !cost.IsFree(), cost.EnergyEquivalent(e.balance)}
	}
	sort.SliceStable(st.Hand, func(i, j int) bool {
		a, b := keys[st.Hand[i].Name], keys[st.Hand[j].Name]
		if a.category != b.category {
			return a.category < b.category
		}
		if a.paid != b.paid {
			return !a.paid
		}
		return a.cost < b.cost
	})
}
