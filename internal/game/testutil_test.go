package game

import (
	"context"
	"sync"
	"testing"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// ScriptedSelector answers selections from a predefined script. Once the
// script runs out it declines, which cancels the play.
type ScriptedSelector struct {
	picks [][]string
	pos   int

	// Requests records every selection asked for, in order.
	Requests []SelectionRequest
}

func NewScriptedSelector() *ScriptedSelector {
	return &ScriptedSelector{}
}

func (s *ScriptedSelector) AddPick(names ...string) *ScriptedSelector {
	s.picks = append(s.picks, names)
	return s
}

func (s *ScriptedSelector) Select(ctx context.Context, card string, req SelectionRequest) ([]string, error) {
	s.Requests = append(s.Requests, req)
	if s.pos >= len(s.picks) {
		return nil, nil
	}
	pick := s.picks[s.pos]
	s.pos++
	return pick, nil
}

// recordingCues remembers every cue played.
type recordingCues struct {
	mu   sync.Mutex
	cues []Cue
}

func (r *recordingCues) Play(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

func (r *recordingCues) has(c Cue) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, got := range r.cues {
		if got == c {
			return true
		}
	}
	return false
}

// recordingBanner remembers every banner shown.
type recordingBanner struct {
	texts []string
}

func (r *recordingBanner) Show(ctx context.Context, text string) error {
	r.texts = append(r.texts, text)
	return nil
}

// newTestEngine starts a deterministic engine: fixed seed, unshuffled
// starting deck, no pacing, in-memory store.
func newTestEngine(t *testing.T, mutate ...func(*EngineConfig)) *Engine {
	t.Helper()
	cfg := EngineConfig{
		Seed:      1,
		NoShuffle: true,
		Events:    log.NewMemoryLogger(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	e := NewEngine(cfg)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e
}

func commons(names []string) []CardInstance {
	out := make([]CardInstance, 0, len(names))
	for _, n := range names {
		out = append(out, CardInstance{Name: n})
	}
	return out
}

// deal replaces every pile with common instances and clears pending
// offers. The last name of draw is the top of the draw pile.
func deal(e *Engine, hand, draw, discard []string) {
	withState(e, func(st *State) {
		st.Hand = commons(hand)
		st.Draw = commons(draw)
		st.Discard = commons(discard)
		st.PlayZone = nil
		st.Options = nil
	})
}

// withState mutates the live session under the engine lock and republishes.
func withState(e *Engine, fn func(st *State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.st)
	e.publish()
}

func names(pile []CardInstance) []string {
	out := make([]string, 0, len(pile))
	for _, ci := range pile {
		out = append(out, ci.Name)
	}
	return out
}

// assertConserved checks that every card sits in exactly one pile and that
// the total matches want.
func assertConserved(t *testing.T, st *State, want int) {
	t.Helper()
	seen := map[string]Pile{}
	for _, p := range allPiles {
		for _, ci := range *st.pile(p) {
			if prev, ok := seen[ci.Name]; ok {
				t.Fatalf("%s is in both %s and %s", ci.Name, prev, p)
			}
			seen[ci.Name] = p
		}
	}
	if got := st.CardCount(); got != want {
		t.Errorf("Expected %d cards across piles, got %d", want, got)
	}
}

func testState() *State {
	return NewState("test", DefaultBalance(), DifficultyNormal)
}

// journal returns the engine's in-memory event log.
func journal(t *testing.T, e *Engine) *log.MemoryLogger {
	t.Helper()
	mem, ok := e.Events().(*log.MemoryLogger)
	if !ok {
		t.Fatalf("Expected a MemoryLogger, got %T", e.Events())
	}
	return mem
}
