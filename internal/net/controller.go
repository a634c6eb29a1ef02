package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/game"
	"github.com/peterkuimelis/devdeck/internal/log"
)

const outboxSize = 64

// NetworkController serves one connection: it forwards snapshots, journal
// events and selections to the client and applies the client's commands to
// the engine.
type NetworkController struct {
	conn   net.Conn
	enc    *json.Encoder
	dec    *json.Decoder
	server *Server
	logger *zap.Logger

	out  chan ServerMessage
	done chan struct{}

	mu       sync.Mutex
	name     string
	lastSeq  int
	overSent string // session id whose game_over was already sent
	closed   bool
}

// NewNetworkController creates a controller for the given connection.
func NewNetworkController(conn net.Conn, server *Server) *NetworkController {
	return &NetworkController{
		conn:   conn,
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		server: server,
		logger: server.logger().With(zap.String("remote", conn.RemoteAddr().String())),
		out:    make(chan ServerMessage, outboxSize),
		done:   make(chan struct{}),
	}
}

// enqueue queues msg for the writer. A client too slow to drain its outbox
// loses messages rather than stalling the engine.
func (nc *NetworkController) enqueue(msg ServerMessage) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.closed {
		return
	}
	select {
	case nc.out <- msg:
	default:
		nc.logger.Warn("outbox full, dropping message", zap.String("type", msg.Type))
	}
}

// writeLoop encodes queued messages until the controller closes.
func (nc *NetworkController) writeLoop() {
	for {
		select {
		case msg := <-nc.out:
			if err := nc.enc.Encode(msg); err != nil {
				nc.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-nc.done:
			return
		}
	}
}

// recv reads a client message.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// SendState forwards a snapshot with the journal events logged since the
// last one, and a game_over notice the first time a session ends.
func (nc *NetworkController) SendState(snap *game.Snapshot, events []log.GameEvent) {
	if snap == nil {
		return
	}
	nc.mu.Lock()
	var fresh []log.GameEvent
	for _, ev := range events {
		if ev.Seq > nc.lastSeq {
			fresh = append(fresh, ev)
			nc.lastSeq = ev.Seq
		}
	}
	announce := snap.IsGameOver && nc.overSent != snap.SessionID
	if announce {
		nc.overSent = snap.SessionID
	}
	nc.mu.Unlock()

	msg := ServerMessage{Type: MsgState, State: snap}
	for _, ev := range fresh {
		msg.Events = append(msg.Events, NewEventView(ev))
	}
	nc.enqueue(msg)
	if announce {
		nc.enqueue(ServerMessage{Type: MsgGameOver, Won: snap.IsWon, Result: GameOverText(snap)})
	}
}

// SendSelection forwards a pending selection.
func (nc *NetworkController) SendSelection(p *game.PendingSelection) {
	nc.enqueue(ServerMessage{Type: MsgSelect, Selection: p})
}

// Serve runs the read loop until the client disconnects or ctx is done.
func (nc *NetworkController) Serve(ctx context.Context) error {
	defer nc.close()

	go func() {
		select {
		case <-ctx.Done():
			nc.conn.Close()
		case <-nc.done:
		}
	}()

	for {
		msg, err := nc.recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("recv: %w", err)
		}
		nc.handle(ctx, msg)
	}
}

func (nc *NetworkController) handle(ctx context.Context, msg ClientMessage) {
	switch msg.Type {
	case MsgJoin:
		nc.mu.Lock()
		nc.name = msg.Name
		nc.mu.Unlock()
		nc.logger.Info("client joined", zap.String("name", msg.Name))

	case MsgCommand:
		cmd, err := nc.command(msg)
		if err != nil {
			nc.enqueue(ServerMessage{Type: MsgError, Error: err.Error()})
			return
		}
		// Plays may wait on a selection answered over this same
		// connection, so commands run off the read loop.
		go nc.dispatch(ctx, cmd)

	case MsgAnswer:
		sel := nc.server.Selector
		if sel == nil {
			nc.enqueue(ServerMessage{Type: MsgError, Error: game.ErrNoPendingSelection.Error()})
			return
		}
		var err error
		if msg.Cancel {
			err = sel.Resolve(msg.SelectionID, nil)
		} else {
			err = sel.Resolve(msg.SelectionID, msg.Names)
		}
		if err != nil {
			nc.enqueue(ServerMessage{Type: MsgError, Error: err.Error()})
		}

	default:
		nc.enqueue(ServerMessage{Type: MsgError, Error: fmt.Sprintf("unknown message type %q", msg.Type)})
	}
}

func (nc *NetworkController) command(msg ClientMessage) (game.Command, error) {
	if msg.Command != nil {
		return *msg.Command, nil
	}
	return game.ParseCommand(msg.Line)
}

func (nc *NetworkController) dispatch(ctx context.Context, cmd game.Command) {
	err := nc.server.Engine.Dispatch(ctx, cmd)
	if err != nil {
		nc.logger.Debug("command rejected", zap.String("command", cmd.Name), zap.Error(err))
		nc.enqueue(ServerMessage{Type: MsgError, Command: cmd.Name, Error: err.Error()})
		return
	}
	nc.enqueue(ServerMessage{Type: MsgResult, Command: cmd.Name})
}

func (nc *NetworkController) close() {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.closed {
		return
	}
	nc.closed = true
	close(nc.done)
	nc.conn.Close()
}

// GameOverText describes how a finished session ended.
func GameOverText(snap *game.Snapshot) string {
	if snap.IsWon {
		return fmt.Sprintf("You made it with $%d on day %d. Score %d.", snap.Money, snap.DayIndex+1, snap.Score)
	}
	return fmt.Sprintf("Game over on day %d: %s. Score %d.", snap.DayIndex+1, snap.Reason, snap.Score)
}
