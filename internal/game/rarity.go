package game

import "math/rand"

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

func (r Rarity) String() string {
	switch r {
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	case RarityMythic:
		return "mythic"
	default:
		return "common"
	}
}

// rarityTable lists cumulative thresholds, rarest first.
var rarityTable = []struct {
	below float64
	tier  Rarity
}{
	{0.015, RarityMythic},
	{0.04, RarityLegendary},
	{0.12, RarityEpic},
	{0.30, RarityRare},
}

// RarityFor maps a uniform sample in [0,1) onto a tier.
func RarityFor(r float64) Rarity {
	for _, row := range rarityTable {
		if r < row.below {
			return row.tier
		}
	}
	return RarityCommon
}

// SampleRarity draws a tier from the fixed probability table.
func SampleRarity(rng *rand.Rand) Rarity {
	return RarityFor(rng.Float64())
}

// Advantage is the scalar fed to a card's effect builder.
func Advantage(initialRarity int, difficulty Difficulty, inflation int) int {
	return initialRarity + difficulty.Bonus() - inflation
}

// NewInstance creates a compact card instance with a freshly sampled rarity.
func NewInstance(card *Card, rng *rand.Rand) CardInstance {
	return CardInstance{
		Name:          card.Name,
		InitialRarity: card.BaseRarity + int(SampleRarity(rng)),
	}
}
