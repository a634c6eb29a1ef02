package game

import (
	"context"
	"fmt"
)

// priceFor applies the advantage to a base cost. Once the price bottoms out
// at zero, the advantage left over is returned as surplus, in energy units.
func priceFor(base Cost, advantage int, b Balance) (Cost, int) {
	step := 1
	if base.Type == CostMoney {
		step = b.MoneyPerEnergy
	}
	price, rest := SmartClamp(base.Value-advantage*step, 0, Unbounded)
	return Cost{Type: base.Type, Value: price}, -rest / step
}

// dynamic scales a secondary value by the surplus and clamps it.
func dynamic(base, surplus, step, min, max int) (int, int) {
	return SmartClamp(base+surplus*step, min, max)
}

// handRoomAfterPlay is how many cards fit in the hand once the played card
// has left it.
func handRoomAfterPlay(live *State) int {
	room := live.Balance.MaxHandSize - len(live.Hand) + 1
	if room < 1 {
		return 1
	}
	return room
}

func excludeSelf(card *ResolvedCard) func(CardInstance) bool {
	return func(ci CardInstance) bool { return ci.Name != card.Name }
}

// drawEffect: pay to draw cards. Draws beyond hand room spill into energy.
func drawEffect(base Cost, count, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		n, rest := dynamic(count, surplus, step, 1, handRoomAfterPlay(live))
		eff := &Effect{Cost: cost, Gain: Gain{Draw: n}, Tags: []Tag{TagDraw}}
		spillEnergy(live, cost, &eff.Gain, rest*live.Balance.DrawCost)
		return eff
	}
}

// filteredDrawEffect draws only cards of one category, surfacing them first.
func filteredDrawEffect(base Cost, category Category, count, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		n, rest := dynamic(count, surplus, step, 1, handRoomAfterPlay(live))
		eff := &Effect{
			Text: fmt.Sprintf("Draw up to %d %s %s", n, category, plural(n, "card")),
			Cost: cost,
			Tags: []Tag{TagDraw},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				_, err := e.drawCard(ctx, n, DrawOptions{Category: &category})
				return err
			},
		}
		spillEnergy(live, cost, &eff.Gain, rest*live.Balance.DrawCost)
		return eff
	}
}

// discardPickEffect draws from the discard pile instead of the draw pile.
func discardPickEffect(base Cost, count, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		n, rest := dynamic(count, surplus, step, 1, handRoomAfterPlay(live))
		eff := &Effect{
			Text: fmt.Sprintf("Take %d %s back from the discard pile", n, plural(n, "card")),
			Cost: cost,
			Tags: []Tag{TagDraw},
			Condition: func(st *State, card *ResolvedCard) bool {
				return len(st.Discard) > 0
			},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				_, err := e.drawCard(ctx, n, DrawOptions{FromDiscard: true, Filter: excludeSelf(card)})
				return err
			},
		}
		spillEnergy(live, cost, &eff.Gain, rest*live.Balance.DrawCost)
		return eff
	}
}

// energyEffect grants energy; what does not fit under the cap becomes money.
func energyEffect(base Cost, amount, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		eff := &Effect{Cost: cost, Tags: []Tag{TagEnergy}}
		spillEnergy(live, cost, &eff.Gain, amount+surplus*step)
		return eff
	}
}

// moneyEffect grants money. Money is unbounded so nothing spills.
func moneyEffect(base Cost, amount, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		m, _ := dynamic(amount, surplus, step, 0, Unbounded)
		return &Effect{Cost: cost, Gain: Gain{Money: m}, Tags: []Tag{TagMoney}}
	}
}

// reputationEffect grants reputation up to the cap; the rest converts to
// energy at the reputation exchange rate.
func reputationEffect(base Cost, amount, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		room := live.Balance.ReputationMax - live.Reputation
		rep, rest := dynamic(amount, surplus, step, 0, room)
		eff := &Effect{Cost: cost, Gain: Gain{Reputation: rep}, Tags: []Tag{TagReputation}}
		spillEnergy(live, cost, &eff.Gain, rest*live.Balance.EnergyPerReputation)
		return eff
	}
}

// recycleEffect moves cards from the discard pile to the bottom of the draw
// pile.
func recycleEffect(base Cost, count, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		n, rest := dynamic(count, surplus, step, 1, max(1, len(live.Discard)))
		eff := &Effect{
			Text: fmt.Sprintf("Recycle %d %s", n, plural(n, "card")),
			Cost: cost,
			Tags: []Tag{TagRecycle},
			Condition: func(st *State, card *ResolvedCard) bool {
				return len(st.Discard) > 0
			},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				_, err := e.recycleCard(ctx, RecycleOptions{Count: n, Filter: excludeSelf(card)})
				return err
			},
		}
		spillEnergy(live, cost, &eff.Gain, rest)
		return eff
	}
}

// discardDrawEffect lets the player pick cards to throw away, then draws as
// many plus a bonus.
func discardDrawEffect(base Cost, bonus, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		extra, rest := dynamic(bonus, surplus, step, 0, 3)
		eff := &Effect{
			Text: fmt.Sprintf("Discard any cards, then draw as many plus %d", extra),
			Cost: cost,
			Tags: []Tag{TagDiscard, TagDraw},
			Condition: func(st *State, card *ResolvedCard) bool {
				return len(st.Hand) > 1
			},
			Select: func(st *State, card *ResolvedCard) *SelectionRequest {
				var names []string
				for _, ci := range st.Hand {
					if ci.Name != card.Name {
						names = append(names, ci.Name)
					}
				}
				return &SelectionRequest{
					Prompt:     "Choose cards to discard",
					Pile:       PileHand,
					Candidates: names,
					Min:        1,
					Max:        len(names),
				}
			},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, selection []string) error {
				if err := e.discardCard(ctx, DiscardOptions{Names: selection}); err != nil {
					return err
				}
				_, err := e.drawCard(ctx, len(selection)+extra, DrawOptions{})
				return err
			},
		}
		spillEnergy(live, cost, &eff.Gain, rest*live.Balance.DrawCost)
		return eff
	}
}

// shuffleBackEffect sends random hand cards to the bottom of the draw pile
// and pays out money for the trouble.
func shuffleBackEffect(base Cost, count, money, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		m, _ := dynamic(money, surplus, step, 0, Unbounded)
		return &Effect{
			Text: fmt.Sprintf("Put %d random %s from your hand under the draw pile", count, plural(count, "card")),
			Cost: cost,
			Gain: Gain{Money: m},
			Tags: []Tag{TagDiscard, TagMoney},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				return e.discardCard(ctx, DiscardOptions{Count: count, Random: true, ToDraw: true, Filter: excludeSelf(card)})
			},
		}
	}
}

// upgradeEffect installs one stack of a passive upgrade.
func upgradeEffect(name string, base Cost) EffectBuilder {
	def := LookupUpgrade(name)
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		eff := &Effect{
			Text:    fmt.Sprintf("Install %s: %s", def.Name, def.Description),
			Cost:    cost,
			Tags:    []Tag{TagUpgrade},
			Upgrade: def.Name,
			Condition: func(st *State, card *ResolvedCard) bool {
				return !st.UpgradeMaxed(def.Name)
			},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				return e.acquireUpgrade(ctx, def.Name)
			},
		}
		spillEnergy(live, cost, &eff.Gain, surplus)
		return eff
	}
}

// modifierEffect activates a global card modifier.
func modifierEffect(base Cost, mod Modifier, text string) EffectBuilder {
	LookupModifier(mod.Name)
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		eff := &Effect{
			Text: text,
			Cost: cost,
			Tags: []Tag{TagModifier},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				m := mod
				m.Reason = card.Name
				e.addModifier(m)
				return nil
			},
		}
		spillEnergy(live, cost, &eff.Gain, surplus)
		return eff
	}
}

// capacityEffect raises the energy cap, up to the hard ceiling.
func capacityEffect(base Cost, amount, step int) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		n, rest := dynamic(amount, surplus, step, 0, live.Balance.EnergyMaxCap-live.EnergyMax)
		eff := &Effect{
			Text: fmt.Sprintf("Max energy +%d", n),
			Cost: cost,
			Tags: []Tag{TagEnergy, TagEphemeral},
			Condition: func(st *State, card *ResolvedCard) bool {
				return st.EnergyMax < st.Balance.EnergyMaxCap
			},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				e.raiseEnergyMax(n, card.Name)
				return nil
			},
		}
		eff.Gain.Money = rest * live.Balance.MoneyPerEnergy
		return eff
	}
}

// spawnEffect creates a token card in the hand.
func spawnEffect(base Cost, token string) EffectBuilder {
	LookupCard(token)
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		eff := &Effect{
			Text: fmt.Sprintf("Create a %s card", token),
			Cost: cost,
			Condition: func(st *State, card *ResolvedCard) bool {
				_, idx := st.Locate(token)
				return idx < 0
			},
			OnPlayed: func(ctx context.Context, e *Engine, card *ResolvedCard, _ []string) error {
				return e.spawnToken(ctx, token)
			},
		}
		spillEnergy(live, cost, &eff.Gain, surplus)
		return eff
	}
}

// tokenEffect is a one-shot card that removes itself once played.
func tokenEffect(base Cost, g Gain) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		cost, surplus := priceFor(base, advantage, live.Balance)
		eff := &Effect{Cost: cost, Gain: g, Tags: []Tag{TagToken, TagEphemeral}}
		spillEnergy(live, cost, &eff.Gain, surplus)
		return eff
	}
}

// --- Decorators ---

func withTags(b EffectBuilder, tags ...Tag) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		eff := b(advantage, live)
		for _, t := range tags {
			eff.addTag(t)
		}
		return eff
	}
}

func withGain(b EffectBuilder, g Gain) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		eff := b(advantage, live)
		eff.Gain.Energy += g.Energy
		eff.Gain.Reputation += g.Reputation
		eff.Gain.Money += g.Money
		eff.Gain.Draw += g.Draw
		return eff
	}
}

// staged cards pass through the play zone and pause before resolving.
func staged(b EffectBuilder) EffectBuilder {
	return func(advantage int, live *State) *Effect {
		eff := b(advantage, live)
		eff.NeedsPlayZone = true
		eff.WaitBeforePlay = true
		return eff
	}
}
