package game

// --- Starter cards ---

// Prettier: draw 2 cards. Goes back under the draw pile when played.
func Prettier() *Card {
	return &Card{
		Name:     "Prettier",
		Category: CategoryAction,
		Families: []string{"js", "tooling"},
		Build:    withTags(drawEffect(EnergyCost(3), 2, 1), TagRecycle),
	}
}

// Knex: a query builder that pays the bills.
func Knex() *Card {
	return &Card{
		Name:     "Knex",
		Category: CategoryAction,
		Families: []string{"js"},
		Build:    withTags(moneyEffect(EnergyCost(4), 200, 100), TagRecycle),
	}
}

func Jest() *Card {
	return &Card{
		Name:     "Jest",
		Category: CategoryAction,
		Families: []string{"js", "tooling"},
		Build:    withTags(reputationEffect(EnergyCost(5), 1, 1), TagRecycle),
	}
}

// Processing buys energy with money.
func Processing() *Card {
	return &Card{
		Name:     "Processing",
		Category: CategorySupport,
		Families: []string{"tooling"},
		Build:    energyEffect(MoneyCost(200), 4, 2),
	}
}

// --- Deck manipulation ---

func Webpack() *Card {
	return &Card{
		Name:     "Webpack",
		Category: CategoryAction,
		Families: []string{"js", "tooling"},
		Build:    discardDrawEffect(EnergyCost(2), 1, 1),
	}
}

// GitRevert: recycle cards from the discard pile.
func GitRevert() *Card {
	return &Card{
		Name:     "Git Revert",
		Category: CategoryAction,
		Families: []string{"tooling"},
		Build:    recycleEffect(EnergyCost(1), 2, 1),
	}
}

// Refactor draws action cards only.
func Refactor() *Card {
	return &Card{
		Name:     "Refactor",
		Category: CategoryAction,
		Families: []string{"tooling"},
		Build:    filteredDrawEffect(EnergyCost(3), CategoryAction, 2, 1),
	}
}

func KanbanBoard() *Card {
	return &Card{
		Name:       "Kanban Board",
		Category:   CategorySupport,
		Families:   []string{"office"},
		BaseRarity: 1,
		Build:      discardPickEffect(EnergyCost(2), 1, 1),
	}
}

// SpringCleaning: shuffle 2 random hand cards back and collect $300.
func SpringCleaning() *Card {
	return &Card{
		Name:     "Spring Cleaning",
		Category: CategorySupport,
		Families: []string{"office"},
		Build:    shuffleBackEffect(EnergyCost(1), 2, 300, 100),
	}
}

// --- Income ---

func FreelanceGig() *Card {
	return &Card{
		Name:     "Freelance Gig",
		Category: CategoryAction,
		Families: []string{"career"},
		Build:    moneyEffect(EnergyCost(5), 400, 150),
	}
}

func BugBounty() *Card {
	return &Card{
		Name:     "Bug Bounty",
		Category: CategoryAction,
		Families: []string{"career", "security"},
		Build:    moneyEffect(EnergyCost(6), 600, 200),
	}
}

// Consulting pays well but costs a point of reputation.
func Consulting() *Card {
	return &Card{
		Name:     "Consulting",
		Category: CategoryAction,
		Families: []string{"career"},
		Build:    withGain(moneyEffect(EnergyCost(6), 700, 200), Gain{Reputation: -1}),
	}
}

// StartupExit is a single big payout. It leaves the game once played.
func StartupExit() *Card {
	return &Card{
		Name:       "Startup Exit",
		Category:   CategoryAction,
		Families:   []string{"career"},
		BaseRarity: 2,
		Build:      withTags(moneyEffect(EnergyCost(12), 3000, 500), TagEphemeral),
	}
}

// --- Reputation and energy ---

func OpenSource() *Card {
	return &Card{
		Name:     "Open Source",
		Category: CategoryAction,
		Families: []string{"community"},
		Build:    reputationEffect(EnergyCost(6), 2, 1),
	}
}

func CoffeeBreak() *Card {
	return &Card{
		Name:     "Coffee Break",
		Category: CategorySupport,
		Families: []string{"office"},
		Build:    energyEffect(MoneyCost(100), 3, 1),
	}
}

// Vacation: a full recharge for a price.
func Vacation() *Card {
	return &Card{
		Name:       "Vacation",
		Category:   CategorySupport,
		Families:   []string{"office"},
		BaseRarity: 1,
		Build:      energyEffect(MoneyCost(500), 10, 2),
	}
}

func RubberDuck() *Card {
	return &Card{
		Name:     "Rubber Duck",
		Category: CategorySupport,
		Families: []string{"office"},
		Build:    reputationEffect(EnergyCost(3), 1, 1),
	}
}

// ConferenceTalk takes the stage before paying out reputation and money.
func ConferenceTalk() *Card {
	return &Card{
		Name:       "Conference Talk",
		Category:   CategoryAction,
		Families:   []string{"community", "career"},
		BaseRarity: 1,
		Build:      staged(withGain(reputationEffect(EnergyCost(8), 2, 1), Gain{Money: 300})),
	}
}

// Kubernetes raises the energy cap.
func Kubernetes() *Card {
	return &Card{
		Name:     "Kubernetes",
		Category: CategorySupport,
		Families: []string{"ops"},
		Build:    capacityEffect(MoneyCost(800), 5, 1),
	}
}

// --- Modifiers ---

func StackOverflow() *Card {
	return &Card{
		Name:     "Stack Overflow",
		Category: CategorySupport,
		Families: []string{"community"},
		Build: modifierEffect(EnergyCost(1),
			Modifier{Name: "discount", Params: ModifierParams{Amount: 2}, Once: true},
			"Your next card costs 2 less"),
	}
}

func GitHubCopilot() *Card {
	return &Card{
		Name:       "GitHub Copilot",
		Category:   CategorySupport,
		Families:   []string{"tooling"},
		BaseRarity: 1,
		Build: modifierEffect(EnergyCost(2),
			Modifier{Name: "half-price", Once: true},
			"Your next card costs half"),
	}
}

// ExpenseAccount lets the next money cost be paid in energy.
func ExpenseAccount() *Card {
	return &Card{
		Name:     "Expense Account",
		Category: CategorySupport,
		Families: []string{"office"},
		Build: modifierEffect(EnergyCost(1),
			Modifier{Name: "convert-to-energy", Once: true},
			"Pay your next money cost with energy"),
	}
}

func Hackathon() *Card {
	return &Card{
		Name:       "Hackathon",
		Category:   CategoryAction,
		Families:   []string{"community"},
		BaseRarity: 1,
		Build: modifierEffect(EnergyCost(4),
			Modifier{Name: "overtime", Params: ModifierParams{Factor: 2}, Once: true},
			"Double the money and energy of your next card"),
	}
}

func FreeTier() *Card {
	return &Card{
		Name:       "Free Tier",
		Category:   CategorySupport,
		Families:   []string{"ops"},
		BaseRarity: 2,
		Build: modifierEffect(MoneyCost(300),
			Modifier{Name: "free", Once: true},
			"Your next card is free"),
	}
}

// TypeScript permanently discounts js cards. It leaves the game once played.
func TypeScript() *Card {
	return &Card{
		Name:       "TypeScript",
		Category:   CategorySupport,
		Families:   []string{"js"},
		BaseRarity: 1,
		Build: withTags(modifierEffect(EnergyCost(6),
			Modifier{Name: "discount", Params: ModifierParams{Amount: 1, Family: "js"}},
			"js cards cost 1 less for the rest of the game"), TagEphemeral),
	}
}

// --- Tokens ---

// OnCall creates a Hotfix token.
func OnCall() *Card {
	return &Card{
		Name:     "On-Call",
		Category: CategoryAction,
		Families: []string{"ops"},
		Build:    withGain(spawnEffect(EnergyCost(2), "Hotfix"), Gain{Money: 100}),
	}
}

func Hotfix() *Card {
	return &Card{
		Name:     "Hotfix",
		Category: CategoryAction,
		Families: []string{"ops"},
		Build:    tokenEffect(EnergyCost(1), Gain{Money: 250, Reputation: 1}),
	}
}

// --- Upgrade cards ---

func CoffeeMachineCard() *Card {
	return upgradeCard("Coffee Machine", MoneyCost(300), 0)
}

func MentorshipCard() *Card {
	return upgradeCard("Mentorship", MoneyCost(500), 1)
}

func SavingsAccountCard() *Card {
	return upgradeCard("Savings Account", MoneyCost(800), 1)
}

func ErgonomicChairCard() *Card {
	return upgradeCard("Ergonomic Chair", MoneyCost(400), 0)
}

func PersonalBrandCard() *Card {
	return upgradeCard("Personal Brand", MoneyCost(600), 1)
}

func AutomationCard() *Card {
	return upgradeCard("Automation", MoneyCost(1000), 2)
}

func SecondMonitorCard() *Card {
	return upgradeCard("Second Monitor", MoneyCost(350), 0)
}

func NetworkEffectsCard() *Card {
	return upgradeCard("Network Effects", MoneyCost(1500), 2)
}

func upgradeCard(name string, cost Cost, rarity int) *Card {
	return &Card{
		Name:       name,
		Category:   CategorySupport,
		Families:   []string{"upgrade"},
		BaseRarity: rarity,
		Build:      upgradeEffect(name, cost),
	}
}
