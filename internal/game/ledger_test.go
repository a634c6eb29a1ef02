package game

import (
	"context"
	"errors"
	"testing"

	"github.com/peterkuimelis/devdeck/internal/log"
)

func TestEnergyClampedToMax(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	if err := e.AddEnergy(ctx, 50); err != nil {
		t.Fatalf("AddEnergy: %v", err)
	}
	if e.st.Energy != e.st.EnergyMax {
		t.Errorf("Expected energy capped at %d, got %d", e.st.EnergyMax, e.st.Energy)
	}
	if err := e.AddEnergy(ctx, -5); err != nil {
		t.Fatalf("AddEnergy: %v", err)
	}
	if e.st.Energy != e.st.EnergyMax-5 {
		t.Errorf("Expected %d energy, got %d", e.st.EnergyMax-5, e.st.Energy)
	}
}

func TestEnergyOverspendDebitsReputation(t *testing.T) {
	e := newTestEngine(t)
	withState(e, func(st *State) { st.Energy = 3 })

	// 3 - 14 leaves a shortfall of 11: ceil(11/5) = 3 reputation.
	if err := e.AddEnergy(context.Background(), -14); err != nil {
		t.Fatalf("AddEnergy: %v", err)
	}
	if e.st.Energy != 0 || e.st.Reputation != 7 {
		t.Errorf("Expected 0 energy and 7 reputation, got %d and %d", e.st.Energy, e.st.Reputation)
	}
}

func TestReputationZeroEndsGame(t *testing.T) {
	cues := &recordingCues{}
	banner := &recordingBanner{}
	e := newTestEngine(t, func(cfg *EngineConfig) {
		cfg.Cues = cues
		cfg.Banner = banner
	})
	ctx := context.Background()

	if err := e.AddReputation(ctx, -100); err != nil {
		t.Fatalf("AddReputation: %v", err)
	}
	snap := e.Snapshot()
	if !snap.IsGameOver || snap.IsWon || snap.Reason != ReasonReputation {
		t.Fatalf("Expected a reputation loss, got over=%v won=%v reason=%q", snap.IsGameOver, snap.IsWon, snap.Reason)
	}
	if snap.Reputation != 0 {
		t.Errorf("Expected reputation floored at 0, got %d", snap.Reputation)
	}
	if !cues.has(CueLose) {
		t.Error("Expected the lose cue")
	}
	if len(banner.texts) == 0 {
		t.Error("Expected a game over banner")
	}
	if snap.Meta.GamesPlayed != 1 || snap.Meta.GamesWon != 0 {
		t.Errorf("Expected one lost game recorded, got %+v", snap.Meta)
	}
	if len(journal(t, e).EventsOfType(log.EventGameOver)) != 1 {
		t.Error("Expected one game over event")
	}

	// Commands are refused once the game is over.
	if err := e.AddMoney(ctx, 100); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestReputationDeclineTriggersUpgrade(t *testing.T) {
	e := newTestEngine(t)
	withState(e, func(st *State) {
		st.Upgrades = []Upgrade{{Name: "Personal Brand", Cumul: 2}}
	})
	if err := e.AddReputation(context.Background(), -1); err != nil {
		t.Fatalf("AddReputation: %v", err)
	}
	if e.st.Money != 200 {
		t.Errorf("Expected $200 from Personal Brand, got $%d", e.st.Money)
	}
}

func TestMoneyTargetWins(t *testing.T) {
	cues := &recordingCues{}
	e := newTestEngine(t, func(cfg *EngineConfig) { cfg.Cues = cues })

	if err := e.AddMoney(context.Background(), e.Balance().MoneyTarget); err != nil {
		t.Fatalf("AddMoney: %v", err)
	}
	snap := e.Snapshot()
	if !snap.IsGameOver || !snap.IsWon || snap.Reason != ReasonTarget {
		t.Fatalf("Expected a win, got over=%v won=%v reason=%q", snap.IsGameOver, snap.IsWon, snap.Reason)
	}
	if snap.Score <= 0 {
		t.Errorf("Expected a positive score, got %d", snap.Score)
	}
	if snap.Meta.GamesWon != 1 || snap.Meta.BestScore != snap.Score {
		t.Errorf("Expected the win recorded with its score, got %+v", snap.Meta)
	}
	if !cues.has(CueWin) {
		t.Error("Expected the win cue")
	}
}

func TestMoneyFlooredAtZero(t *testing.T) {
	e := newTestEngine(t)
	if err := e.AddMoney(context.Background(), -500); err != nil {
		t.Fatalf("AddMoney: %v", err)
	}
	if e.st.Money != 0 {
		t.Errorf("Expected $0, got $%d", e.st.Money)
	}
}

func TestInfinityMode(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	target := e.Balance().MoneyTarget

	if err := e.AddMoney(ctx, target); err != nil {
		t.Fatalf("AddMoney: %v", err)
	}
	if err := e.EnableInfinity(ctx); err != nil {
		t.Fatalf("EnableInfinity: %v", err)
	}
	snap := e.Snapshot()
	if snap.IsGameOver || !snap.InfinityMode {
		t.Fatalf("Expected the won session to reopen, got over=%v infinity=%v", snap.IsGameOver, snap.InfinityMode)
	}

	if err := e.AddMoney(ctx, target); err != nil {
		t.Fatalf("AddMoney in infinity mode: %v", err)
	}
	snap = e.Snapshot()
	if snap.IsGameOver {
		t.Error("Expected no second win in infinity mode")
	}
	if snap.Meta.GamesPlayed != 1 {
		t.Errorf("Expected the game counted once, got %d", snap.Meta.GamesPlayed)
	}
	if !containsName(snap.Meta.Achievements, "Beyond Infinity") {
		t.Errorf("Expected Beyond Infinity unlocked, got %v", snap.Meta.Achievements)
	}
}

func TestLedgerIsBounded(t *testing.T) {
	e := newTestEngine(t, func(cfg *EngineConfig) {
		cfg.Balance = DefaultBalance()
		cfg.Balance.LedgerSize = 5
	})
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if err := e.AddMoney(ctx, 1); err != nil {
			t.Fatalf("AddMoney: %v", err)
		}
	}
	if len(e.st.Log) != 5 {
		t.Fatalf("Expected 5 ledger entries, got %d", len(e.st.Log))
	}
	last := e.st.Log[len(e.st.Log)-1]
	if last.Type != ResourceMoney || last.Value != 1 || last.Reason != "manual" {
		t.Errorf("Unexpected last entry %+v", last)
	}
}

func containsName(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
