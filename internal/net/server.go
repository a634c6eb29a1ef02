package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/game"
)

// Server hosts an engine for TCP clients.
type Server struct {
	Engine   *game.Engine
	Selector *game.ChannelSelector // nil when the engine never asks
	Addr     string
	Logger   *zap.Logger

	once    sync.Once
	mu      sync.Mutex
	clients map[*NetworkController]struct{}
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// start wires the engine's snapshot and selection feeds to the connected
// clients. It runs once per server.
func (s *Server) start(ctx context.Context) {
	s.once.Do(func() {
		s.clients = map[*NetworkController]struct{}{}
		unsubscribe := s.Engine.Subscribe(s.broadcastState)
		go func() {
			<-ctx.Done()
			unsubscribe()
		}()
		if s.Selector != nil {
			go s.forwardSelections(ctx)
		}
	})
}

func (s *Server) broadcastState(snap *game.Snapshot) {
	events := s.Engine.Events().Events()
	for _, c := range s.snapshotClients() {
		c.SendState(snap, events)
	}
}

func (s *Server) forwardSelections(ctx context.Context) {
	for {
		select {
		case p := <-s.Selector.Updates():
			for _, c := range s.snapshotClients() {
				c.SendSelection(p)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) snapshotClients() []*NetworkController {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*NetworkController, 0, len(s.clients))
	for c := range s.clients {
		out = append(out, c)
	}
	return out
}

// Run listens on Addr and serves every client until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve accepts clients on lis until ctx is canceled.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	defer lis.Close()
	s.logger().Info("waiting for players", zap.String("addr", lis.Addr().String()))

	go func() {
		<-ctx.Done()
		lis.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ServeConn(ctx, conn); err != nil {
				s.logger().Warn("connection closed", zap.Error(err))
			}
		}()
	}
}

// ServeConn serves one already established connection. The host's own
// terminal uses it over a net.Pipe.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) error {
	s.start(ctx)
	nc := NewNetworkController(conn, s)

	s.mu.Lock()
	s.clients[nc] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, nc)
		s.mu.Unlock()
	}()

	go nc.writeLoop()
	nc.SendState(s.Engine.Snapshot(), s.Engine.Events().Events())
	if s.Selector != nil {
		if p := s.Selector.Pending(); p != nil {
			nc.SendSelection(p)
		}
	}
	return nc.Serve(ctx)
}
