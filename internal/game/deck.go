package game

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is one named starting deck. A deck holds each card at most once.
type DeckEntry struct {
	Name  string   `yaml:"name"`
	Cards []string `yaml:"cards"`
}

// Validate checks that every card exists and none repeats.
func (d DeckEntry) Validate() error {
	if len(d.Cards) == 0 {
		return fmt.Errorf("deck %q is empty", d.Name)
	}
	seen := map[string]bool{}
	for _, name := range d.Cards {
		if _, ok := CardRegistry[name]; !ok {
			return fmt.Errorf("deck %q: %w: %s", d.Name, ErrUnknownCard, notFound("card", name, CardNames()))
		}
		if seen[name] {
			return fmt.Errorf("deck %q: %w: %s", d.Name, ErrDuplicateCard, name)
		}
		seen[name] = true
	}
	return nil
}

// ParseDecks parses deck YAML and validates every deck.
func ParseDecks(data []byte) (*DeckFile, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	for _, d := range df.Decks {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return &df, nil
}

// ParseDeckFile parses a YAML deck file and returns a map of deck name to
// card names.
func ParseDeckFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	df, err := ParseDecks(data)
	if err != nil {
		return nil, err
	}
	decks := make(map[string][]string, len(df.Decks))
	for _, d := range df.Decks {
		decks[d.Name] = d.Cards
	}
	return decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the deck file.
func DeckByNumber(path string, n int) (string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	df, err := ParseDecks(data)
	if err != nil {
		return "", nil, err
	}
	if n < 1 || n > len(df.Decks) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(df.Decks))
	}
	deck := df.Decks[n-1]
	return deck.Name, deck.Cards, nil
}

// DeckByName returns the deck whose name matches, ignoring case.
func DeckByName(path, name string) ([]string, error) {
	decks, err := ParseDeckFile(path)
	if err != nil {
		return nil, err
	}
	for deckName, cards := range decks {
		if strings.EqualFold(deckName, name) {
			return cards, nil
		}
	}
	return nil, fmt.Errorf("deck %q not found", name)
}
