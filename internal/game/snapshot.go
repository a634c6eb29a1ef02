package game

// CardView is a resolved card as drivers display it.
type CardView struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Families    []string `json:"families,omitempty"`
	Rarity      int      `json:"rarity"`
	Advantage   int      `json:"advantage"`
	Cost        Cost     `json:"cost"`
	CostText    string   `json:"costText"`
	Description string   `json:"description"`
	Tags        []Tag    `json:"tags,omitempty"`
	Playable    bool     `json:"playable"`
	Modifiers   []string `json:"modifiers,omitempty"`
}

// UpgradeView is an acquired upgrade with its definition.
type UpgradeView struct {
	Name        string `json:"name"`
	Cumul       int    `json:"cumul"`
	Max         int    `json:"max"`
	Event       string `json:"event"`
	Description string `json:"description"`
}

// Snapshot is the read-only projection of a settled session. It is rebuilt
// once per settle cycle.
type Snapshot struct {
	SessionID     string        `json:"sessionId"`
	Difficulty    string        `json:"difficulty"`
	Day           float64       `json:"day"`
	DayIndex      int           `json:"dayIndex"`
	Week          int           `json:"week"`
	Month         int           `json:"month"`
	Inflation     int           `json:"inflation"`
	InfinityMode  bool          `json:"infinityMode"`
	Energy        int           `json:"energy"`
	EnergyMax     int           `json:"energyMax"`
	Reputation    int           `json:"reputation"`
	ReputationMax int           `json:"reputationMax"`
	Money         int           `json:"money"`
	MoneyTarget   int           `json:"moneyTarget"`
	DrawCost      int           `json:"drawCost"`
	CanDraw       bool          `json:"canDraw"`
	Hand          []CardView    `json:"hand"`
	Draw          []CardView    `json:"draw"`
	Discard       []CardView    `json:"discard"`
	PlayZone      []CardView    `json:"playZone"`
	Upgrades      []UpgradeView `json:"upgrades"`
	Modifiers     []Modifier    `json:"modifiers"`
	Offer         []CardView    `json:"offer"`
	PendingOffers int           `json:"pendingOffers"`
	Ledger        []LedgerEntry `json:"ledger"`
	Score         int           `json:"score"`
	IsGameOver    bool          `json:"isGameOver"`
	IsWon         bool          `json:"isWon"`
	Reason        string        `json:"reason,omitempty"`
	LastError     string        `json:"lastError,omitempty"`
	Meta          Meta          `json:"meta"`
}

// View projects one instance. Each card gets its own used set.
func View(ci CardInstance, st *State) CardView {
	rc := Project(ci, st, UsedSet{})
	v := CardView{
		Name:        rc.Name,
		Category:    rc.Def.Category.String(),
		Families:    rc.Def.Families,
		Rarity:      rc.InitialRarity,
		Advantage:   rc.Advantage,
		Cost:        rc.Effect.Cost,
		CostText:    rc.Effect.Cost.String(),
		Description: rc.Description(),
		Tags:        rc.Effect.Tags,
		Playable:    Playable(st, rc),
	}
	for _, m := range rc.Modifiers {
		v.Modifiers = append(v.Modifiers, m.Name)
	}
	return v
}

func views(pile []CardInstance, st *State) []CardView {
	out := make([]CardView, 0, len(pile))
	for _, ci := range pile {
		out = append(out, View(ci, st))
	}
	return out
}

// BuildSnapshot projects the whole session.
func BuildSnapshot(st *State, meta *Meta) *Snapshot {
	snap := &Snapshot{
		SessionID:     st.ID,
		Difficulty:    st.Difficulty.String(),
		Day:           st.Day,
		DayIndex:      st.DayIndex(),
		Week:          st.Week(),
		Month:         st.Month(),
		Inflation:     st.Inflation,
		InfinityMode:  st.InfinityMode,
		Energy:        st.Energy,
		EnergyMax:     st.EnergyMax,
		Reputation:    st.Reputation,
		ReputationMax: st.Balance.ReputationMax,
		Money:         st.Money,
		MoneyTarget:   st.Balance.MoneyTarget,
		DrawCost:      st.Balance.DrawCost,
		CanDraw:       CanDraw(st),
		Hand:          views(st.Hand, st),
		Draw:          views(st.Draw, st),
		Discard:       views(st.Discard, st),
		PlayZone:      views(st.PlayZone, st),
		Modifiers:     append([]Modifier{}, st.Modifiers...),
		Score:         Score(st),
		IsGameOver:    st.IsGameOver,
		IsWon:         st.IsWon,
		Reason:        st.Reason,
		LastError:     st.LastError,
	}
	for _, up := range st.Upgrades {
		def := LookupUpgrade(up.Name)
		snap.Upgrades = append(snap.Upgrades, UpgradeView{
			Name:        up.Name,
			Cumul:       up.Cumul,
			Max:         def.Max,
			Event:       string(def.Event),
			Description: def.Description,
		})
	}
	if offer := st.Offer(); offer != nil {
		for _, name := range offer {
			snap.Offer = append(snap.Offer, View(CardInstance{Name: name}, st))
		}
		snap.PendingOffers = len(st.Options)
	}
	tail := st.Log
	if len(tail) > 10 {
		tail = tail[len(tail)-10:]
	}
	snap.Ledger = append([]LedgerEntry{}, tail...)
	if meta != nil {
		snap.Meta = *meta
		snap.Meta.Discoveries = append([]string{}, meta.Discoveries...)
		snap.Meta.Achievements = append([]string{}, meta.Achievements...)
	}
	return snap
}

// publish rebuilds the snapshot and hands it to every observer.
func (e *Engine) publish() {
	snap := BuildSnapshot(e.st, e.meta)
	e.snapshot.Store(snap)

	e.obsMu.Lock()
	observers := make([]func(*Snapshot), 0, len(e.observers))
	for _, fn := range e.observers {
		observers = append(observers, fn)
	}
	e.obsMu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}

// Snapshot returns the latest settled snapshot. It never blocks on a
// running command.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Subscribe registers fn to receive every new snapshot. Observers run on
// the engine's goroutine and must not issue commands.
func (e *Engine) Subscribe(fn func(*Snapshot)) (unsubscribe func()) {
	e.obsMu.Lock()
	defer e.obsMu.Unlock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	return func() {
		e.obsMu.Lock()
		defer e.obsMu.Unlock()
		delete(e.observers, id)
	}
}

// Meta returns a copy of the cross-session stats.
func (e *Engine) Meta() Meta {
	if snap := e.Snapshot(); snap != nil {
		return snap.Meta
	}
	return Meta{}
}

// Catalog describes every registered card at common rarity, priced for a
// fresh session.
func (e *Engine) Catalog() []CardView {
	d := DifficultyNormal
	if snap := e.Snapshot(); snap != nil {
		if parsed, err := ParseDifficulty(snap.Difficulty); err == nil {
			d = parsed
		}
	}
	st := NewState("", e.balance, d)
	out := make([]CardView, 0, len(CardNames()))
	for _, name := range CardNames() {
		out = append(out, View(CardInstance{Name: name}, st))
	}
	return out
}
