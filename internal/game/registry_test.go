package game

import (
	"errors"
	"strings"
	"testing"
)

// TestCatalogBuilds projects every card at several advantages to catch
// builder panics and negative costs.
func TestCatalogBuilds(t *testing.T) {
	st := testState()
	st.Hand = commons([]string{"Knex"})
	for _, name := range CardNames() {
		card := LookupCard(name)
		if card.Name != name {
			t.Errorf("Registry key %q builds card %q", name, card.Name)
		}
		for _, adv := range []int{-3, 0, 2, 6} {
			eff := card.Build(adv, st)
			if eff == nil {
				t.Fatalf("%s built a nil effect", name)
			}
			if eff.Cost.Value < 0 {
				t.Errorf("%s at advantage %d has negative cost %v", name, adv, eff.Cost)
			}
			if eff.Describe() == "" {
				t.Errorf("%s at advantage %d has no description", name, adv)
			}
		}
	}
}

func TestUpgradeCardsMatchRegistry(t *testing.T) {
	for _, name := range UpgradeNames() {
		eff := LookupCard(name).Build(0, testState())
		if eff.Upgrade != name {
			t.Errorf("Upgrade card %s installs %q", name, eff.Upgrade)
		}
	}
}

func TestLookupCardPanicsWithHint(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected a panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, `"Prettier"`) {
			t.Errorf("Expected a did-you-mean hint, got %v", r)
		}
	}()
	LookupCard("Prettire")
}

func TestResolveCardName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Knex", "Knex"},
		{"knex", "Knex"},
		{"git rev", "Git Revert"},
		{"kuberentes", "Kubernetes"},
		{"  Free Tier ", "Free Tier"},
	}
	for _, tt := range tests {
		got, err := ResolveCardName(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ResolveCardName(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
		}
	}

	if _, err := ResolveCardName("co"); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("Expected an ambiguous prefix to fail, got %v", err)
	}
	if _, err := ResolveCardName("zzzzzz"); !errors.Is(err, ErrUnknownCard) {
		t.Errorf("Expected ErrUnknownCard, got %v", err)
	}
}
