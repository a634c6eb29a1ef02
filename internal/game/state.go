package game

import (
	"encoding/json"
	"math"
)

// LedgerEntry records one resource mutation.
type LedgerEntry struct {
	Value  int      `json:"value"`
	Type   Resource `json:"type"`
	Reason string   `json:"reason"`
	Day    float64  `json:"day"`
}

// State is the whole session. Piles hold compact instances only; the top of
// the draw pile is the last element.
type State struct {
	ID           string     `json:"id"`
	Difficulty   Difficulty `json:"difficulty"`
	Day          float64    `json:"day"`
	Inflation    int        `json:"inflation"`
	InfinityMode bool       `json:"infinityMode"`

	Energy     int `json:"energy"`
	EnergyMax  int `json:"energyMax"`
	Reputation int `json:"reputation"`
	Money      int `json:"money"`

	Draw     []CardInstance `json:"draw"`
	Hand     []CardInstance `json:"hand"`
	Discard  []CardInstance `json:"discard"`
	PlayZone []CardInstance `json:"playZone"`

	Upgrades  []Upgrade  `json:"upgrades"`
	Modifiers []Modifier `json:"modifiers"`
	// Options is the queue of pending pick-a-card offers; the head is shown.
	Options [][]string `json:"options"`

	// Operations is the multiset of in-flight operation names.
	Operations map[string]int `json:"operations,omitempty"`
	Log        []LedgerEntry  `json:"log"`

	IsGameOver bool   `json:"isGameOver"`
	IsWon      bool   `json:"isWon"`
	Reason     string `json:"reason,omitempty"`
	// Recorded is set once the finished game was counted in the meta stats.
	Recorded  bool   `json:"recorded,omitempty"`
	Announced bool   `json:"announced,omitempty"`
	LastError string `json:"lastError,omitempty"`

	Balance Balance `json:"-"`
}

// NewState creates an empty session with full energy and reputation.
func NewState(id string, b Balance, d Difficulty) *State {
	return &State{
		ID:         id,
		Difficulty: d,
		Energy:     b.EnergyMax,
		EnergyMax:  b.EnergyMax,
		Reputation: b.ReputationMax,
		Operations: map[string]int{},
		Balance:    b,
	}
}

// DayIndex is the current whole day, 0-based.
func (st *State) DayIndex() int {
	return int(math.Floor(st.Day))
}

func (st *State) Week() int {
	return st.DayIndex() / st.Balance.DaysPerWeek
}

func (st *State) Month() int {
	return st.DayIndex() / st.Balance.DaysPerMonth
}

// pile returns a pointer to the named pile slice.
func (st *State) pile(p Pile) *[]CardInstance {
	switch p {
	case PileDraw:
		return &st.Draw
	case PileHand:
		return &st.Hand
	case PileDiscard:
		return &st.Discard
	case PilePlayZone:
		return &st.PlayZone
	}
	return nil
}

var allPiles = []Pile{PileDraw, PileHand, PileDiscard, PilePlayZone}

// Locate finds which pile holds the named card. The index is -1 when the
// card is in no pile.
func (st *State) Locate(name string) (Pile, int) {
	for _, p := range allPiles {
		for i, ci := range *st.pile(p) {
			if ci.Name == name {
				return p, i
			}
		}
	}
	return PileDraw, -1
}

// Owns reports whether the card is in any pile.
func (st *State) Owns(name string) bool {
	_, idx := st.Locate(name)
	return idx >= 0
}

// HandIndex returns the index of the named card in the hand, or -1.
func (st *State) HandIndex(name string) int {
	for i, ci := range st.Hand {
		if ci.Name == name {
			return i
		}
	}
	return -1
}

// take removes and returns the card at idx from pile p.
func (st *State) take(p Pile, idx int) CardInstance {
	s := st.pile(p)
	ci := (*s)[idx]
	*s = append((*s)[:idx], (*s)[idx+1:]...)
	return ci
}

// putTop appends ci as the new top (last element) of pile p.
func (st *State) putTop(p Pile, ci CardInstance) {
	s := st.pile(p)
	*s = append(*s, ci)
}

// putBottom inserts ci at the bottom (first element) of pile p.
func (st *State) putBottom(p Pile, ci CardInstance) {
	s := st.pile(p)
	*s = append([]CardInstance{ci}, *s...)
}

// CardCount is the number of cards across every pile.
func (st *State) CardCount() int {
	return len(st.Draw) + len(st.Hand) + len(st.Discard) + len(st.PlayZone)
}

// HandFull reports whether the hand is at capacity.
func (st *State) HandFull() bool {
	return len(st.Hand) >= st.Balance.MaxHandSize
}

// Upgrade returns the acquired upgrade, or nil.
func (st *State) Upgrade(name string) *Upgrade {
	for i := range st.Upgrades {
		if st.Upgrades[i].Name == name {
			return &st.Upgrades[i]
		}
	}
	return nil
}

// UpgradeMaxed reports whether the upgrade already holds its max stack.
func (st *State) UpgradeMaxed(name string) bool {
	up := st.Upgrade(name)
	return up != nil && up.Cumul >= LookupUpgrade(name).Max
}

// Offer returns the head pick-a-card offer, or nil.
func (st *State) Offer() []string {
	if len(st.Options) == 0 {
		return nil
	}
	return st.Options[0]
}

// Clone deep-copies the state through its JSON form; derived fields are
// carried over explicitly.
func (st *State) Clone() *State {
	data, err := json.Marshal(st)
	if err != nil {
		panic(err)
	}
	var c State
	if err := json.Unmarshal(data, &c); err != nil {
		panic(err)
	}
	c.Balance = st.Balance
	if c.Operations == nil {
		c.Operations = map[string]int{}
	}
	return &c
}
