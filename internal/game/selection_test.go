package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChannelSelectorResolve(t *testing.T) {
	sel := NewChannelSelector(0)
	req := SelectionRequest{Prompt: "pick", Candidates: []string{"Knex", "Jest"}, Min: 1, Max: 1}

	done := make(chan []string, 1)
	go func() {
		names, _ := sel.Select(context.Background(), "Webpack", req)
		done <- names
	}()

	p := <-sel.Updates()
	if p.Card != "Webpack" || len(p.Candidates) != 2 {
		t.Fatalf("Unexpected pending selection %+v", p)
	}
	if err := sel.Resolve(p.ID, []string{"Bug Bounty"}); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Expected ErrInvalidSelection, got %v", err)
	}
	if err := sel.Resolve("other", []string{"Knex"}); !errors.Is(err, ErrNoPendingSelection) {
		t.Errorf("Expected ErrNoPendingSelection for a wrong id, got %v", err)
	}
	if err := sel.Resolve(p.ID, []string{"Knex"}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := <-done; len(got) != 1 || got[0] != "Knex" {
		t.Errorf("Expected [Knex], got %v", got)
	}
	if sel.Pending() != nil {
		t.Error("Expected no pending selection after resolve")
	}
}

func TestChannelSelectorTimeout(t *testing.T) {
	sel := NewChannelSelector(10 * time.Millisecond)
	names, err := sel.Select(context.Background(), "Webpack", SelectionRequest{Candidates: []string{"Knex"}, Min: 1, Max: 1})
	if err != nil || names != nil {
		t.Errorf("Expected a timeout to be no selection, got %v, %v", names, err)
	}
}

// TestChannelSelectorResolveAtDeadline: an answer Resolve accepts is the
// answer Select returns, even when the timeout fires at the same moment.
func TestChannelSelectorResolveAtDeadline(t *testing.T) {
	req := SelectionRequest{Candidates: []string{"Knex"}, Min: 1, Max: 1}
	for i := 0; i < 200; i++ {
		sel := NewChannelSelector(time.Millisecond)
		done := make(chan []string, 1)
		go func() {
			names, _ := sel.Select(context.Background(), "Webpack", req)
			done <- names
		}()
		p := <-sel.Updates()
		err := sel.Resolve(p.ID, []string{"Knex"})
		got := <-done

		if err == nil && len(got) != 1 {
			t.Fatalf("Iteration %d: Resolve accepted but Select returned %v", i, got)
		}
		if err != nil && got != nil {
			t.Fatalf("Iteration %d: Resolve failed with %v but Select returned %v", i, err, got)
		}
		if sel.Pending() != nil {
			t.Fatalf("Iteration %d: selection still pending", i)
		}
	}
}

func TestChannelSelectorCancel(t *testing.T) {
	sel := NewChannelSelector(0)
	done := make(chan []string, 1)
	go func() {
		names, _ := sel.Select(context.Background(), "Webpack", SelectionRequest{Candidates: []string{"Knex"}, Min: 1, Max: 1})
		done <- names
	}()
	<-sel.Updates()
	sel.Cancel()
	if got := <-done; got != nil {
		t.Errorf("Expected nil after cancel, got %v", got)
	}
}

// TestPlayThroughChannelSelector drives a selection from another goroutine
// the way a network driver does.
func TestPlayThroughChannelSelector(t *testing.T) {
	sel := NewChannelSelector(time.Second)
	e := newTestEngine(t, func(cfg *EngineConfig) { cfg.Selector = sel })
	deal(e, []string{"Webpack", "Knex", "Jest"}, []string{"Prettier", "Processing"}, nil)

	go func() {
		p := <-sel.Updates()
		_ = sel.Resolve(p.ID, []string{"Jest"})
	}()
	if err := e.Play(context.Background(), "Webpack", PlayOptions{}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if e.Snapshot().Discard[1].Name != "Jest" {
		t.Errorf("Expected Jest discarded, got %+v", e.Snapshot().Discard)
	}
}

func TestFirstSelector(t *testing.T) {
	got, _ := FirstSelector{}.Select(context.Background(), "x", SelectionRequest{Candidates: []string{"a", "b"}, Min: 1})
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("Expected [a], got %v", got)
	}
}
