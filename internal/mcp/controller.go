package mcp

import (
	"errors"

	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/game"
)

var errSelectionPending = errors.New("a selection is pending; answer it with select_cards first")

// The engine blocks inside a play while its selector waits for an answer.
// A tool call therefore starts the command on its own goroutine and returns
// either when the command finishes or when a selection shows up; the next
// select_cards call picks the same command back up.

// Run dispatches cmd and waits until it finishes or stops on a selection.
func (s *GameSession) Run(cmd game.Command) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight != nil {
		return s.response(errSelectionPending)
	}

	done := make(chan error, 1)
	go func() { done <- s.engine.Dispatch(s.ctx, cmd) }()
	return s.await(done)
}

// Select answers the pending selection; nil names cancel it.
func (s *GameSession) Select(names []string) *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight == nil {
		return s.response(game.ErrNoPendingSelection)
	}
	p := s.selector.Pending()
	if p == nil {
		return s.response(game.ErrNoPendingSelection)
	}
	if err := s.selector.Resolve(p.ID, names); err != nil {
		resp := s.response(err)
		resp.Pending = p
		return resp
	}
	return s.await(s.inflight)
}

// await blocks until the running command returns or asks for a selection.
// Callers hold s.mu.
func (s *GameSession) await(done chan error) *ToolResponse {
	for {
		select {
		case err := <-done:
			s.inflight = nil
			if err != nil {
				s.logger.Debug("command rejected", zap.Error(err))
			}
			return s.response(err)
		case p := <-s.selector.Updates():
			if p != s.selector.Pending() {
				continue // a selection that already timed out
			}
			s.inflight = done
			resp := s.response(nil)
			resp.Pending = p
			return resp
		case <-s.ctx.Done():
			return s.response(s.ctx.Err())
		}
	}
}

