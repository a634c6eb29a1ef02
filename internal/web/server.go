// Package web serves the engine over HTTP: a JSON API for commands and a
// websocket that streams snapshots, selections, cues and banners.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/game"
	devnet "github.com/peterkuimelis/devdeck/internal/net"
)

// Options configures a Server.
type Options struct {
	DecksFile      string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// Server is the devdeck web API server.
type Server struct {
	engine    *game.Engine
	selector  *game.ChannelSelector
	hub       *Hub
	decksFile string
	timeout   time.Duration
	logger    *zap.Logger
	router    chi.Router
}

// NewServer creates a web server for a started engine. hub must already be
// attached to the engine; selector may be nil.
func NewServer(engine *game.Engine, selector *game.ChannelSelector, hub *Hub, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	s := &Server{
		engine:    engine,
		selector:  selector,
		hub:       hub,
		decksFile: opts.DecksFile,
		timeout:   timeout,
		logger:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))
		r.Get("/state", s.handleState)
		r.Get("/cards", s.handleCards)
		r.Get("/decks", s.handleDecks)
		r.Get("/events", s.handleEvents)
		r.Post("/commands", s.handleCommand)
		r.Post("/commands/{name}", s.handleCommand)
		r.Get("/selection", s.handleGetSelection)
		r.Post("/selection", s.handleSelection)
	})

	// Websockets live as long as the page, outside the request timeout.
	router.Get("/ws", s.handleWebSocket)

	s.router = router
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	s.logger.Info("devdeck web API listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.engine.Snapshot()
	if snap == nil {
		writeError(w, game.ErrNotStarted)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Catalog())
}

// handleEvents returns the journal entries after ?since=<seq>.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	since := 0
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "since must be an integer", http.StatusBadRequest)
			return
		}
		since = n
	}
	events := []*devnet.EventView{}
	for _, ev := range s.engine.Events().Events() {
		if ev.Seq > since {
			events = append(events, devnet.NewEventView(ev))
		}
	}
	writeJSON(w, http.StatusOK, events)
}

// commandRequest is either a text line or a structured command. The name
// may also come from the path.
type commandRequest struct {
	game.Command
	Line string `json:"line,omitempty"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}
	if name := chi.URLParam(r, "name"); name != "" {
		req.Name = name
	}

	cmd := req.Command
	if req.Line != "" {
		parsed, err := game.ParseCommand(req.Line)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		cmd = parsed
	} else if cmd.Card != "" {
		name, err := game.ResolveCardName(cmd.Card)
		if err != nil {
			writeError(w, err)
			return
		}
		cmd.Card = name
	}

	if err := s.engine.Dispatch(r.Context(), cmd); err != nil {
		s.logger.Debug("command rejected",
			zap.String("command", cmd.Name),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	if s.selector == nil || s.selector.Pending() == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, s.selector.Pending())
}

type selectionRequest struct {
	ID     string   `json:"id"`
	Names  []string `json:"names"`
	Cancel bool     `json:"cancel"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := s.resolve(req.ID, req.Names, req.Cancel); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resolve(id string, names []string, cancel bool) error {
	if s.selector == nil {
		return game.ErrNoPendingSelection
	}
	if cancel {
		names = nil
	} else if names == nil {
		names = []string{}
	}
	return s.selector.Resolve(id, names)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := s.hub.add(conn)
	defer s.hub.remove(c)
	go c.writeLoop(ctx)

	if snap := s.engine.Snapshot(); snap != nil {
		c.enqueue(devnet.ServerMessage{Type: devnet.MsgState, State: snap}, s.logger)
	}
	if s.selector != nil {
		if p := s.selector.Pending(); p != nil {
			c.enqueue(devnet.ServerMessage{Type: devnet.MsgSelect, Selection: p}, s.logger)
		}
	}

	for {
		var msg devnet.ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && ctx.Err() == nil {
				s.logger.Debug("websocket read ended", zap.Error(err))
			}
			return
		}
		s.handleMessage(ctx, c, msg)
	}
}

// handleMessage applies a websocket message. It speaks the same messages as
// the TCP protocol.
func (s *Server) handleMessage(ctx context.Context, c *wsClient, msg devnet.ClientMessage) {
	switch msg.Type {
	case devnet.MsgCommand:
		var cmd game.Command
		if msg.Command != nil {
			cmd = *msg.Command
		} else {
			parsed, err := game.ParseCommand(msg.Line)
			if err != nil {
				c.enqueue(devnet.ServerMessage{Type: devnet.MsgError, Error: err.Error()}, s.logger)
				return
			}
			cmd = parsed
		}
		go func() {
			if err := s.engine.Dispatch(ctx, cmd); err != nil {
				c.enqueue(devnet.ServerMessage{Type: devnet.MsgError, Command: cmd.Name, Error: err.Error()}, s.logger)
				return
			}
			c.enqueue(devnet.ServerMessage{Type: devnet.MsgResult, Command: cmd.Name}, s.logger)
		}()

	case devnet.MsgAnswer:
		if err := s.resolve(msg.SelectionID, msg.Names, msg.Cancel); err != nil {
			c.enqueue(devnet.ServerMessage{Type: devnet.MsgError, Error: err.Error()}, s.logger)
		}

	case devnet.MsgJoin:
		s.logger.Info("websocket player joined", zap.String("name", msg.Name))

	default:
		c.enqueue(devnet.ServerMessage{Type: devnet.MsgError, Error: "unknown message type " + strconv.Quote(msg.Type)}, s.logger)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrUnknownCommand),
		errors.Is(err, game.ErrUnknownCard),
		errors.Is(err, game.ErrUnknownDifficulty),
		errors.Is(err, game.ErrInvalidSelection):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrNoPendingSelection):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNotStarted):
		status = http.StatusServiceUnavailable
	case game.IsRuleError(err):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
