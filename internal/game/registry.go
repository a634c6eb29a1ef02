package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// CardRegistry maps card names to their constructor functions. It is filled
// in init because card effects reach back into the registry.
var CardRegistry map[string]func() *Card

func init() {
	CardRegistry = map[string]func() *Card{
		"Prettier":        Prettier,
		"Knex":            Knex,
		"Jest":            Jest,
		"Processing":      Processing,
		"Webpack":         Webpack,
		"Git Revert":      GitRevert,
		"Refactor":        Refactor,
		"Kanban Board":    KanbanBoard,
		"Spring Cleaning": SpringCleaning,
		"Freelance Gig":   FreelanceGig,
		"Bug Bounty":      BugBounty,
		"Consulting":      Consulting,
		"Startup Exit":    StartupExit,
		"Open Source":     OpenSource,
		"Coffee Break":    CoffeeBreak,
		"Vacation":        Vacation,
		"Rubber Duck":     RubberDuck,
		"Conference Talk": ConferenceTalk,
		"Kubernetes":      Kubernetes,
		"Stack Overflow":  StackOverflow,
		"GitHub Copilot":  GitHubCopilot,
		"Expense Account": ExpenseAccount,
		"Hackathon":       Hackathon,
		"Free Tier":       FreeTier,
		"TypeScript":      TypeScript,
		"On-Call":         OnCall,
		"Hotfix":          Hotfix,
		"Coffee Machine":  CoffeeMachineCard,
		"Mentorship":      MentorshipCard,
		"Savings Account": SavingsAccountCard,
		"Ergonomic Chair": ErgonomicChairCard,
		"Personal Brand":  PersonalBrandCard,
		"Automation":      AutomationCard,
		"Second Monitor":  SecondMonitorCard,
		"Network Effects": NetworkEffectsCard,
	}
}

// LookupCard looks up a card by name and returns a new definition.
// Panics if the card is not found.
func LookupCard(name string) *Card {
	ctor, ok := CardRegistry[name]
	if !ok {
		panic(notFound("card", name, CardNames()))
	}
	return ctor()
}

// CardNames returns every registered card name, sorted.
func CardNames() []string {
	names := make([]string, 0, len(CardRegistry))
	for name := range CardRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveCardName maps loosely typed player input onto a catalog name:
// exact, then case-insensitive, then unique prefix, then closest edit
// distance.
func ResolveCardName(input string) (string, error) {
	input = strings.TrimSpace(input)
	if _, ok := CardRegistry[input]; ok {
		return input, nil
	}
	lower := strings.ToLower(input)
	names := CardNames()
	var prefixed []string
	for _, name := range names {
		l := strings.ToLower(name)
		if l == lower {
			return name, nil
		}
		if lower != "" && strings.HasPrefix(l, lower) {
			prefixed = append(prefixed, name)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}
	if best := closest(lower, names); best != "" {
		return best, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCard, input)
}

// closest returns the candidate within edit-distance tolerance of input, or
// "" when none is close enough.
func closest(input string, candidates []string) string {
	if len(input) < 3 {
		return ""
	}
	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(input, strings.ToLower(cand))
		if dist > distanceLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func notFound(kind, name string, candidates []string) string {
	msg := fmt.Sprintf("%s not found in registry: %q", kind, name)
	if hint := closest(strings.ToLower(name), candidates); hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	return msg
}
