package web

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/game"
	devnet "github.com/peterkuimelis/devdeck/internal/net"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// Hub fans engine output out to every connected browser. It doubles as the
// engine's CueBank and Banner, so sound cues and banners reach the page.
type Hub struct {
	logger *zap.Logger

	mu       sync.Mutex
	clients  map[*wsClient]struct{}
	lastSeq  int
	overSent string // session id whose game_over went out
	engine   *game.Engine
}

type wsClient struct {
	conn *websocket.Conn
	send chan devnet.ServerMessage
}

// NewHub creates an empty hub. Attach it to the engine once the engine
// exists.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:  logger,
		clients: map[*wsClient]struct{}{},
	}
}

// Attach streams the engine's snapshots and the selector's pending
// selections until ctx is done. selector may be nil.
func (h *Hub) Attach(ctx context.Context, engine *game.Engine, selector *game.ChannelSelector) {
	h.mu.Lock()
	h.engine = engine
	h.mu.Unlock()

	unsubscribe := engine.Subscribe(h.publishState)
	go func() {
		defer unsubscribe()
		var updates <-chan *game.PendingSelection
		if selector != nil {
			updates = selector.Updates()
		}
		for {
			select {
			case p := <-updates:
				h.broadcast(devnet.ServerMessage{Type: devnet.MsgSelect, Selection: p})
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Play implements game.CueBank.
func (h *Hub) Play(cue game.Cue) {
	h.broadcast(devnet.ServerMessage{Type: devnet.MsgCue, Cue: string(cue)})
}

// Show implements game.Banner. The browser animates the banner; the engine
// paces itself.
func (h *Hub) Show(ctx context.Context, text string) error {
	h.broadcast(devnet.ServerMessage{Type: devnet.MsgBanner, Text: text})
	return nil
}

func (h *Hub) publishState(snap *game.Snapshot) {
	msg := devnet.ServerMessage{Type: devnet.MsgState, State: snap}

	h.mu.Lock()
	if h.engine != nil {
		for _, ev := range h.engine.Events().Events() {
			if ev.Seq > h.lastSeq {
				msg.Events = append(msg.Events, devnet.NewEventView(ev))
				h.lastSeq = ev.Seq
			}
		}
	}
	announce := snap.IsGameOver && h.overSent != snap.SessionID
	if announce {
		h.overSent = snap.SessionID
	}
	h.mu.Unlock()

	h.broadcast(msg)
	if announce {
		h.broadcast(devnet.ServerMessage{Type: devnet.MsgGameOver, Won: snap.IsWon, Result: devnet.GameOverText(snap)})
	}
}

func (h *Hub) broadcast(msg devnet.ServerMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.enqueue(msg, h.logger)
	}
}

// Clients reports how many browsers are connected.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) *wsClient {
	c := &wsClient{conn: conn, send: make(chan devnet.ServerMessage, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", zap.Int("clients", h.Clients()))
	return c
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (c *wsClient) enqueue(msg devnet.ServerMessage, logger *zap.Logger) {
	select {
	case c.send <- msg:
	default:
		logger.Warn("websocket client lagging, dropping message", zap.String("type", msg.Type))
	}
}

// writeLoop drains the send queue until ctx is done or a write fails.
func (c *wsClient) writeLoop(ctx context.Context) {
	for {
		select {
		case msg := <-c.send:
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c.conn, msg)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
