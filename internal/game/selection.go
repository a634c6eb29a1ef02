package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoPendingSelection = errors.New("no pending selection")
	ErrInvalidSelection   = errors.New("invalid selection")
)

// Selector resolves a pre-play selection. A nil result means "no
// selection" and cancels the play.
type Selector interface {
	Select(ctx context.Context, card string, req SelectionRequest) ([]string, error)
}

// CancelSelector declines every selection. It is the default for headless
// engines.
type CancelSelector struct{}

func (CancelSelector) Select(context.Context, string, SelectionRequest) ([]string, error) {
	return nil, nil
}

// FirstSelector always takes the first Min candidates.
type FirstSelector struct{}

func (FirstSelector) Select(_ context.Context, _ string, req SelectionRequest) ([]string, error) {
	n := req.Min
	if n > len(req.Candidates) {
		n = len(req.Candidates)
	}
	return append([]string(nil), req.Candidates[:n]...), nil
}

// PendingSelection is a selection waiting for the player. It is resolved by
// exactly one send on its reply channel.
type PendingSelection struct {
	ID         string    `json:"id"`
	Card       string    `json:"card"`
	Prompt     string    `json:"prompt"`
	Candidates []string  `json:"candidates"`
	Min        int       `json:"min"`
	Max        int       `json:"max"`
	Deadline   time.Time `json:"deadline"`

	reply chan []string
}

// Validate checks a proposed answer against the request bounds.
func (p *PendingSelection) Validate(names []string) error {
	if len(names) < p.Min || len(names) > p.Max {
		return fmt.Errorf("%w: pick between %d and %d cards", ErrInvalidSelection, p.Min, p.Max)
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("%w: %s picked twice", ErrInvalidSelection, n)
		}
		seen[n] = true
		found := false
		for _, c := range p.Candidates {
			if c == n {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s is not a candidate", ErrInvalidSelection, n)
		}
	}
	return nil
}

// ChannelSelector publishes each selection as a PendingSelection and waits
// for a driver to resolve it. Timeouts and cancellation resolve to no
// selection.
type ChannelSelector struct {
	timeout time.Duration

	mu      sync.Mutex
	pending *PendingSelection
	updates chan *PendingSelection
}

// NewChannelSelector creates a selector; timeout 0 waits until the context
// is done.
func NewChannelSelector(timeout time.Duration) *ChannelSelector {
	return &ChannelSelector{
		timeout: timeout,
		updates: make(chan *PendingSelection, 1),
	}
}

// Updates delivers every newly pending selection. Stale notifications are
// dropped if nobody is listening.
func (s *ChannelSelector) Updates() <-chan *PendingSelection {
	return s.updates
}

// Pending returns the selection currently waiting, or nil.
func (s *ChannelSelector) Pending() *PendingSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *ChannelSelector) Select(ctx context.Context, card string, req SelectionRequest) ([]string, error) {
	p := &PendingSelection{
		ID:         uuid.NewString(),
		Card:       card,
		Prompt:     req.Prompt,
		Candidates: append([]string(nil), req.Candidates...),
		Min:        req.Min,
		Max:        req.Max,
		reply:      make(chan []string, 1),
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
		p.Deadline = time.Now().Add(s.timeout)
	}

	s.mu.Lock()
	s.pending = p
	s.mu.Unlock()

	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- p:
	default:
	}

	select {
	case names := <-p.reply:
		return names, nil
	case <-ctx.Done():
		s.mu.Lock()
		if s.pending == p {
			s.pending = nil
			s.mu.Unlock()
			return nil, nil
		}
		s.mu.Unlock()
		// Resolve already took this selection; its answer is on the way.
		return <-p.reply, nil
	}
}

// Resolve answers the pending selection. A nil slice cancels it.
func (s *ChannelSelector) Resolve(id string, names []string) error {
	s.mu.Lock()
	p := s.pending
	if p == nil || (id != "" && p.ID != id) {
		s.mu.Unlock()
		return ErrNoPendingSelection
	}
	if names != nil {
		if err := p.Validate(names); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.pending = nil
	s.mu.Unlock()

	p.reply <- names
	return nil
}

// Cancel declines the pending selection, if any.
func (s *ChannelSelector) Cancel() {
	_ = s.Resolve("", nil)
}
