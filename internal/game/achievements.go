package game

import (
	"context"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// Achievement is a declarative predicate over the session and meta stats.
type Achievement struct {
	Name        string
	Description string
	Check       func(st *State, m *Meta) bool
}

var Achievements []Achievement

func init() {
	Achievements = []Achievement{
		{
			Name:        "First Paycheck",
			Description: "Hold $1,000",
			Check:       func(st *State, m *Meta) bool { return st.Money >= 1000 },
		},
		{
			Name:        "Full Stack",
			Description: "Fill your hand",
			Check:       func(st *State, m *Meta) bool { return st.HandFull() },
		},
		{
			Name:        "Week One",
			Description: "Survive a week",
			Check:       func(st *State, m *Meta) bool { return st.DayIndex() >= st.Balance.DaysPerWeek },
		},
		{
			Name:        "Caffeinated",
			Description: "Max out the Coffee Machine",
			Check:       func(st *State, m *Meta) bool { return st.UpgradeMaxed("Coffee Machine") },
		},
		{
			Name:        "Home Office",
			Description: "Own four different upgrades",
			Check:       func(st *State, m *Meta) bool { return len(st.Upgrades) >= 4 },
		},
		{
			Name:        "Inflation Survivor",
			Description: "Reach inflation 2",
			Check:       func(st *State, m *Meta) bool { return st.Inflation >= 2 },
		},
		{
			Name:        "Collector",
			Description: "Discover 20 cards",
			Check:       func(st *State, m *Meta) bool { return len(m.Discoveries) >= 20 },
		},
		{
			Name:        "Ship It",
			Description: "Win a game",
			Check:       func(st *State, m *Meta) bool { return m.GamesWon >= 1 },
		},
		{
			Name:        "Speedrun",
			Description: "Win before the first month ends",
			Check: func(st *State, m *Meta) bool {
				return st.IsWon && st.DayIndex() < st.Balance.DaysPerMonth
			},
		},
		{
			Name:        "Burnout",
			Description: "Run out of reputation",
			Check: func(st *State, m *Meta) bool {
				return st.IsGameOver && st.Reason == ReasonReputation
			},
		},
		{
			Name:        "Beyond Infinity",
			Description: "Double the target in infinity mode",
			Check: func(st *State, m *Meta) bool {
				return st.InfinityMode && st.Money >= 2*st.Balance.MoneyTarget
			},
		},
	}
}

// checkAchievements unlocks every achievement whose predicate now holds.
// Unlocking is idempotent.
func (e *Engine) checkAchievements(ctx context.Context) {
	for _, a := range Achievements {
		if e.meta.HasAchievement(a.Name) || !a.Check(e.st, e.meta) {
			continue
		}
		e.meta.Unlock(a.Name)
		e.log(log.NewAchievementEvent(e.st.DayIndex(), a.Name))
		_ = e.announce(ctx, "Achievement unlocked: "+a.Name)
	}
}
