package game

import (
	"context"
	"testing"

	"github.com/peterkuimelis/devdeck/internal/log"
)

func TestNewDayRegenAndDailyUpgrade(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Knex"}, nil, nil)
	withState(e, func(st *State) {
		st.Energy = 10
		st.Upgrades = []Upgrade{{Name: "Coffee Machine", Cumul: 2}}
	})

	if err := e.advanceTime(context.Background(), 10); err != nil {
		t.Fatalf("advanceTime: %v", err)
	}
	if e.st.DayIndex() != 1 {
		t.Fatalf("Expected day 1, got %v", e.st.Day)
	}
	want := 10 + e.Balance().DailyEnergy + 2
	if e.st.Energy != want {
		t.Errorf("Expected %d energy, got %d", want, e.st.Energy)
	}
	triggers := journal(t, e).EventsOfType(log.EventUpgradeTrigger)
	if len(triggers) != 1 || triggers[0].Card != "Coffee Machine" {
		t.Errorf("Expected one Coffee Machine trigger, got %+v", triggers)
	}
}

func TestTimeScalesWithCompletion(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Knex"}, nil, nil)
	if err := e.advanceTime(context.Background(), 5); err != nil {
		t.Fatalf("advanceTime: %v", err)
	}
	small := e.st.Day

	e2 := newTestEngine(t)
	deal(e2, []string{"Knex", "Jest", "Prettier", "Processing"},
		[]string{"Webpack", "Refactor", "Bug Bounty", "Consulting"}, nil)
	if err := e2.advanceTime(context.Background(), 5); err != nil {
		t.Fatalf("advanceTime: %v", err)
	}
	if e2.st.Day <= small {
		t.Errorf("Expected a bigger collection to make time pass faster: %v <= %v", e2.st.Day, small)
	}
}

func TestNewWeekOffersChoice(t *testing.T) {
	banner := &recordingBanner{}
	e := newTestEngine(t, func(cfg *EngineConfig) { cfg.Banner = banner })
	deal(e, []string{"Knex"}, nil, nil)
	withState(e, func(st *State) {
		st.Day = 6.95
		st.Reputation = 5
		st.Upgrades = []Upgrade{{Name: "Mentorship", Cumul: 2}}
	})

	if err := e.advanceTime(context.Background(), 2); err != nil {
		t.Fatalf("advanceTime: %v", err)
	}
	if e.st.Week() != 1 {
		t.Fatalf("Expected week 1, got day %v", e.st.Day)
	}
	if len(e.st.Options) != 1 {
		t.Errorf("Expected a new offer, got %d", len(e.st.Options))
	}
	if e.st.Reputation != 7 {
		t.Errorf("Expected Mentorship to add 2 reputation, got %d", e.st.Reputation)
	}
	if len(banner.texts) == 0 || banner.texts[0] != "Week 2" {
		t.Errorf("Expected a Week 2 banner, got %v", banner.texts)
	}
}

func TestNewMonthRaisesInflation(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Knex"}, nil, nil)
	withState(e, func(st *State) {
		st.Day = 27.95
		st.Money = 1000
		st.Upgrades = []Upgrade{{Name: "Savings Account", Cumul: 1}}
	})

	if err := e.advanceTime(context.Background(), 2); err != nil {
		t.Fatalf("advanceTime: %v", err)
	}
	if e.st.Inflation != 1 {
		t.Errorf("Expected inflation 1, got %d", e.st.Inflation)
	}
	if e.st.Money != 1050 {
		t.Errorf("Expected 5%% interest, got $%d", e.st.Money)
	}
	if len(journal(t, e).EventsOfType(log.EventNewMonth)) != 1 {
		t.Error("Expected a new month event")
	}
}

func TestUpgradeConditionGatesTrigger(t *testing.T) {
	e := newTestEngine(t)
	deal(e, []string{"Knex"}, nil, nil)
	withState(e, func(st *State) {
		st.Upgrades = []Upgrade{{Name: "Savings Account", Cumul: 3}}
	})
	if err := e.triggerEvent(context.Background(), OnMonthly, "test"); err != nil {
		t.Fatalf("triggerEvent: %v", err)
	}
	if len(journal(t, e).EventsOfType(log.EventUpgradeTrigger)) != 0 {
		t.Error("Expected Savings Account to stay idle without money")
	}
}

func TestUpgradeAcquiredTriggers(t *testing.T) {
	e := newTestEngine(t)
	withState(e, func(st *State) {
		st.Reputation = 5
		st.Upgrades = []Upgrade{{Name: "Network Effects", Cumul: 1}}
	})
	if err := e.acquireUpgrade(context.Background(), "Coffee Machine"); err != nil {
		t.Fatalf("acquireUpgrade: %v", err)
	}
	if e.st.Reputation != 6 {
		t.Errorf("Expected Network Effects to add reputation, got %d", e.st.Reputation)
	}
}

func TestOperationSetSettles(t *testing.T) {
	e := newTestEngine(t)
	var published int
	unsubscribe := e.Subscribe(func(*Snapshot) { published++ })
	defer unsubscribe()

	release := e.acquire("outer")
	inner := e.acquire("inner")
	inner()
	if published != 0 {
		t.Error("Expected no settle while an operation is in flight")
	}
	if !e.Busy() {
		t.Error("Expected the engine to be busy")
	}
	release()
	release()
	if published != 1 {
		t.Errorf("Expected exactly one settle, got %d", published)
	}
	if e.Busy() {
		t.Error("Expected the operation set to be empty")
	}
}
