package game

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/peterkuimelis/devdeck/internal/log"
)

func TestPlayRecycleCard(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Knex", "Jest"}, []string{"Prettier"}, nil)

	if err := e.Play(context.Background(), "Knex", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	snap := e.Snapshot()
	if snap.Money != 200 || snap.Energy != 16 {
		t.Errorf("Expected $200 and 16 energy, got $%d and %d", snap.Money, snap.Energy)
	}
	if got := names(e.st.Draw); !reflect.DeepEqual(got, []string{"Knex", "Prettier"}) {
		t.Errorf("Expected Knex under the draw pile, got %v", got)
	}
	plays := journal(t, e).EventsOfType(log.EventPlay)
	if len(plays) != 1 || plays[0].Card != "Knex" {
		t.Errorf("Expected one play event for Knex, got %+v", plays)
	}
}

func TestPlayGoesToDiscard(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Freelance Gig", "Jest"}, []string{"Prettier"}, nil)

	if err := e.Play(context.Background(), "Freelance Gig", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if got := names(e.st.Discard); !reflect.DeepEqual(got, []string{"Freelance Gig"}) {
		t.Errorf("Expected Freelance Gig on the discard pile, got %v", got)
	}
	if e.st.Money != 400 {
		t.Errorf("Expected $400, got $%d", e.st.Money)
	}
}

func TestPlayEphemeralCardLeavesTheGame(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Startup Exit", "Jest"}, []string{"Prettier"}, nil)

	if err := e.Play(context.Background(), "Startup Exit", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if e.st.Owns("Startup Exit") {
		t.Error("Expected Startup Exit to leave the game")
	}
	if len(journal(t, e).EventsOfType(log.EventRemove)) != 1 {
		t.Error("Expected a remove event")
	}
	assertConserved(t, e.st, 2)
}

func TestPlayRejected(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deal(e, []string{"Vacation", "Jest"}, []string{"Prettier"}, []string{"Knex"})

	if err := e.Play(ctx, "Knex", PlayOptions{}); !errors.Is(err, ErrCardNotInHand) {
		t.Errorf("Expected ErrCardNotInHand, got %v", err)
	}
	if err := e.Play(ctx, "Vacation", PlayOptions{}); !errors.Is(err, ErrCannotAfford) {
		t.Errorf("Expected ErrCannotAfford, got %v", err)
	}
	if e.st.HandIndex("Vacation") < 0 {
		t.Error("Expected Vacation to stay in hand")
	}

	// Free plays skip the cost entirely.
	withState(e, func(st *State) { st.Energy = 5 })
	if err := e.Play(ctx, "Vacation", PlayOptions{Free: true}); err != nil {
		t.Fatalf("free Play: %v", err)
	}
	if e.st.Money != 0 || e.st.Energy != 15 {
		t.Errorf("Expected $0 and 15 energy, got $%d and %d", e.st.Money, e.st.Energy)
	}
}

func TestPlayWithSelection(t *testing.T) {
	sel := NewScriptedSelector().AddPick("Knex")
	e := newTestEngine(t, func(cfg *EngineConfig) { cfg.Selector = sel })
	deal(e, []string{"Webpack", "Knex", "Jest"}, []string{"Prettier", "Processing"}, nil)

	if err := e.Play(context.Background(), "Webpack", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(sel.Requests) != 1 {
		t.Fatalf("Expected one selection request, got %d", len(sel.Requests))
	}
	if got := sel.Requests[0].Candidates; !reflect.DeepEqual(got, []string{"Knex", "Jest"}) {
		t.Errorf("Expected Webpack to offer the rest of the hand, got %v", got)
	}
	if got := names(e.st.Discard); !reflect.DeepEqual(got, []string{"Webpack", "Knex"}) {
		t.Errorf("Expected Webpack then Knex discarded, got %v", got)
	}
	for _, want := range []string{"Jest", "Prettier", "Processing"} {
		if e.st.HandIndex(want) < 0 {
			t.Errorf("Expected %s in hand, hand is %v", want, names(e.st.Hand))
		}
	}
	if e.st.Energy != 18 {
		t.Errorf("Expected 18 energy, got %d", e.st.Energy)
	}
}

func TestPlayCanceledSelection(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Webpack", "Knex", "Jest"}, []string{"Prettier"}, nil)

	err := e.Play(context.Background(), "Webpack", PlayOptions{})
	if !errors.Is(err, ErrSelectionCanceled) {
		t.Fatalf("Expected ErrSelectionCanceled, got %v", err)
	}
	if e.st.Energy != 20 || len(e.st.Hand) != 3 {
		t.Errorf("Expected nothing to change, energy %d and hand %v", e.st.Energy, names(e.st.Hand))
	}
	if e.st.LastError != "" {
		t.Errorf("Expected a canceled selection not to be a fault, got %q", e.st.LastError)
	}
}

func TestEmptyHandRefills(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Knex"},
		[]string{"Jest", "Prettier", "Processing", "Freelance Gig", "Bug Bounty", "Rubber Duck"}, nil)
	withState(e, func(st *State) {
		st.Upgrades = []Upgrade{{Name: "Ergonomic Chair", Cumul: 1}}
	})

	if err := e.Play(context.Background(), "Knex", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(e.st.Hand) != e.Balance().InitialHandSize {
		t.Errorf("Expected a refilled hand of %d, got %v", e.Balance().InitialHandSize, names(e.st.Hand))
	}
	if got := names(e.st.Draw); !reflect.DeepEqual(got, []string{"Knex", "Jest"}) {
		t.Errorf("Expected Knex and Jest left in the draw pile, got %v", got)
	}
	if e.st.Energy != 18 {
		t.Errorf("Expected 20-4+2 = 18 energy, got %d", e.st.Energy)
	}
	assertConserved(t, e.st, 7)
}

func TestPlayUpgradeCard(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deal(e, []string{"Coffee Machine", "Jest"}, []string{"Prettier"}, nil)
	withState(e, func(st *State) { st.Money = 1000 })

	if err := e.Play(ctx, "Coffee Machine", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	up := e.st.Upgrade("Coffee Machine")
	if up == nil || up.Cumul != 1 {
		t.Fatalf("Expected Coffee Machine at 1 stack, got %+v", up)
	}
	if e.st.Money != 700 {
		t.Errorf("Expected $700, got $%d", e.st.Money)
	}
	if got := names(e.st.Discard); !reflect.DeepEqual(got, []string{"Coffee Machine"}) {
		t.Errorf("Expected the upgrade card discarded, got %v", got)
	}

	// The stack that maxes the upgrade removes the card.
	withState(e, func(st *State) {
		st.Upgrades[0].Cumul = 2
		st.Hand = append(st.Hand, st.take(PileDiscard, 0))
	})
	if err := e.Play(ctx, "Coffee Machine", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !e.st.UpgradeMaxed("Coffee Machine") {
		t.Error("Expected Coffee Machine maxed")
	}
	if e.st.Owns("Coffee Machine") {
		t.Error("Expected the maxed upgrade card to leave the game")
	}
}

func TestUpgradeMaxedRejected(t *testing.T) {
	e := newTestEngine(t)
	withState(e, func(st *State) {
		st.Upgrades = []Upgrade{{Name: "Network Effects", Cumul: 1}}
	})
	err := e.acquireUpgrade(context.Background(), "Network Effects")
	if !errors.Is(err, ErrUpgradeMaxed) {
		t.Errorf("Expected ErrUpgradeMaxed, got %v", err)
	}
}

func TestStagedCardPassesPlayZone(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Conference Talk", "Jest"}, []string{"Prettier"}, nil)
	withState(e, func(st *State) { st.Reputation = 5 })

	if err := e.Play(context.Background(), "Conference Talk", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(e.st.PlayZone) != 0 {
		t.Errorf("Expected the play zone to be empty after the play, got %v", names(e.st.PlayZone))
	}
	if e.st.Reputation != 7 || e.st.Money != 300 {
		t.Errorf("Expected 7 reputation and $300, got %d and $%d", e.st.Reputation, e.st.Money)
	}
}

func TestTokenLifecycle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deal(e, []string{"On-Call", "Jest"}, []string{"Prettier"}, nil)

	if err := e.Play(ctx, "On-Call", PlayOptions{}); err != nil {
		t.Fatalf("Play On-Call: %v", err)
	}
	if e.st.HandIndex("Hotfix") < 0 {
		t.Fatalf("Expected a Hotfix token in hand, got %v", names(e.st.Hand))
	}
	if err := e.Play(ctx, "Hotfix", PlayOptions{}); err != nil {
		t.Fatalf("Play Hotfix: %v", err)
	}
	if e.st.Owns("Hotfix") {
		t.Error("Expected the token to leave the game")
	}
}
