package game

// ResolvedCard is a card instance projected through the catalog, its
// advantage and the active modifiers. It is a derived view and is never
// persisted.
type ResolvedCard struct {
	CardInstance
	Def       *Card
	Advantage int
	Effect    *Effect
	// Modifiers lists the global modifiers that changed this card.
	Modifiers []Modifier
}

func (rc *ResolvedCard) clone() *ResolvedCard {
	c := *rc
	c.Effect = rc.Effect.clone()
	c.Modifiers = append([]Modifier(nil), rc.Modifiers...)
	return &c
}

func (rc *ResolvedCard) withCost(cost Cost) *ResolvedCard {
	c := rc.clone()
	c.Effect.Cost = cost
	return c
}

// Description renders the card's effect as the player sees it.
func (rc *ResolvedCard) Description() string {
	return rc.Effect.Describe()
}

// Project resolves a compact instance against the live state. It is a pure
// function of the instance, the state and the used set.
func Project(inst CardInstance, live *State, used UsedSet) *ResolvedCard {
	def := LookupCard(inst.Name)
	adv := Advantage(inst.InitialRarity, live.Difficulty, live.Inflation)
	rc := &ResolvedCard{
		CardInstance: inst,
		Def:          def,
		Advantage:    adv,
		Effect:       def.Build(adv, live),
	}
	rc, _ = ApplyGlobalModifiers(rc, live, used)
	return rc
}

// Playable reports whether the card's condition holds and its cost can be
// paid from current resources.
func Playable(st *State, rc *ResolvedCard) bool {
	if rc.Effect.Condition != nil && !rc.Effect.Condition(st, rc) {
		return false
	}
	return CanAfford(st, rc.Effect.Cost)
}
