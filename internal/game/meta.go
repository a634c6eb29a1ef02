package game

import "sort"

// Meta is the cross-session record. It survives resets.
type Meta struct {
	Discoveries   []string `json:"discoveries"`
	Achievements  []string `json:"achievements"`
	GamesPlayed   int      `json:"gamesPlayed"`
	GamesWon      int      `json:"gamesWon"`
	LifetimeMoney int      `json:"lifetimeMoney"`
	ScoreAverage  float64  `json:"scoreAverage"`
	BestScore     int      `json:"bestScore"`
}

func NewMeta() *Meta {
	return &Meta{Discoveries: []string{}, Achievements: []string{}}
}

func contains(sorted []string, name string) bool {
	i := sort.SearchStrings(sorted, name)
	return i < len(sorted) && sorted[i] == name
}

func insertSorted(sorted []string, name string) []string {
	i := sort.SearchStrings(sorted, name)
	sorted = append(sorted, "")
	copy(sorted[i+1:], sorted[i:])
	sorted[i] = name
	return sorted
}

// Discover adds name to the discoveries and reports whether it is new.
func (m *Meta) Discover(name string) bool {
	if contains(m.Discoveries, name) {
		return false
	}
	m.Discoveries = insertSorted(m.Discoveries, name)
	return true
}

func (m *Meta) HasAchievement(name string) bool {
	return contains(m.Achievements, name)
}

// Unlock records an achievement and reports whether it was new.
func (m *Meta) Unlock(name string) bool {
	if m.HasAchievement(name) {
		return false
	}
	m.Achievements = insertSorted(m.Achievements, name)
	return true
}

// RecordGame counts a finished game and folds its score into the average.
func (m *Meta) RecordGame(score int, won bool) {
	m.GamesPlayed++
	if won {
		m.GamesWon++
	}
	m.ScoreAverage += (float64(score) - m.ScoreAverage) / float64(m.GamesPlayed)
	if score > m.BestScore {
		m.BestScore = score
	}
}
