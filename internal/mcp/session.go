package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/game"
	devnet "github.com/peterkuimelis/devdeck/internal/net"
)

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []*devnet.EventView    `json:"events"`
	State    *game.Snapshot         `json:"state,omitempty"`
	Pending  *game.PendingSelection `json:"pending,omitempty"`
	Error    string                 `json:"error,omitempty"`
	GameOver bool                   `json:"game_over"`
	Won      bool                   `json:"won,omitempty"`
	Result   string                 `json:"result,omitempty"`
	Cards    []game.CardView        `json:"cards,omitempty"`
}

// GameSession drives one engine for an MCP client. Commands that stop on a
// selection stay in flight until select_cards answers it.
type GameSession struct {
	engine   *game.Engine
	selector *game.ChannelSelector
	logger   *zap.Logger

	// commands outlive the tool call that started them
	ctx context.Context

	mu       sync.Mutex
	lastSeq  int
	inflight chan error
}

// NewGameSession wraps a started engine. The selector must be the one the
// engine was configured with.
func NewGameSession(ctx context.Context, engine *game.Engine, selector *game.ChannelSelector, logger *zap.Logger) *GameSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameSession{
		engine:   engine,
		selector: selector,
		logger:   logger,
		ctx:      ctx,
	}
}

// State reports the current snapshot without running anything.
func (s *GameSession) State() *ToolResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := s.response(nil)
	if s.inflight != nil {
		resp.Pending = s.selector.Pending()
	}
	return resp
}

// response builds the envelope with the events logged since the last one.
func (s *GameSession) response(err error) *ToolResponse {
	snap := s.engine.Snapshot()
	resp := &ToolResponse{
		Events: []*devnet.EventView{},
		State:  snap,
	}
	for _, ev := range s.engine.Events().Events() {
		if ev.Seq > s.lastSeq {
			resp.Events = append(resp.Events, devnet.NewEventView(ev))
			s.lastSeq = ev.Seq
		}
	}
	if err != nil {
		resp.Error = err.Error()
	}
	if snap != nil && snap.IsGameOver {
		resp.GameOver = true
		resp.Won = snap.IsWon
		resp.Result = devnet.GameOverText(snap)
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
