package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/peterkuimelis/devdeck/internal/game"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer

	mu      sync.Mutex
	pending *game.PendingSelection
}

// NewClient creates a client reading commands from in and rendering to out.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

// Connect connects to a server, announces the player and runs the REPL on
// the terminal.
func Connect(ctx context.Context, addr, name string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Println("Connected! Type 'help' for commands.")
	return NewClient(conn, os.Stdin, os.Stdout).RunREPL(ctx, name)
}

// RunREPL renders server messages and sends each input line as a command.
// It returns when the input ends, the player quits or the server hangs up.
func (c *Client) RunREPL(ctx context.Context, name string) error {
	enc := json.NewEncoder(c.conn)
	if err := enc.Encode(ClientMessage{Type: MsgJoin, Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	readErr := make(chan error, 1)
	go func() { readErr <- c.readLoop() }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			msg, quit, err := c.parseLine(line)
			if quit {
				return nil
			}
			if err != nil {
				fmt.Fprintln(c.out, err)
				continue
			}
			if msg == nil {
				continue
			}
			if err := enc.Encode(msg); err != nil {
				return fmt.Errorf("send %s: %w", msg.Type, err)
			}
		}
	}
}

func (c *Client) readLoop() error {
	dec := json.NewDecoder(c.conn)
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return err
		}
		c.render(msg)
	}
}

func (c *Client) render(msg ServerMessage) {
	switch msg.Type {
	case MsgState:
		for _, ev := range msg.Events {
			renderEvent(c.out, ev)
		}
		renderState(c.out, msg.State)
	case MsgSelect:
		c.mu.Lock()
		c.pending = msg.Selection
		c.mu.Unlock()
		renderSelection(c.out, msg.Selection)
	case MsgError:
		fmt.Fprintf(c.out, "! %s\n", msg.Error)
	case MsgGameOver:
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintln(c.out, "          GAME OVER")
		fmt.Fprintln(c.out, "═══════════════════════════════════")
		fmt.Fprintln(c.out, msg.Result)
		fmt.Fprintln(c.out, "Type 'reset' for a new game or 'infinity' to keep going.")
		fmt.Fprintln(c.out, "═══════════════════════════════════")
	}
}

// parseLine turns an input line into a message. Selection answers are
// "select 1 3" (1-based candidate numbers) or "cancel".
func (c *Client) parseLine(line string) (msg *ClientMessage, quit bool, err error) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return nil, true, nil
	case "help":
		fmt.Fprintln(c.out, helpText)
		return nil, false, nil
	case "cancel":
		p := c.takePending()
		if p == nil {
			return nil, false, game.ErrNoPendingSelection
		}
		return &ClientMessage{Type: MsgAnswer, SelectionID: p.ID, Cancel: true}, false, nil
	case "select":
		c.mu.Lock()
		p := c.pending
		c.mu.Unlock()
		if p == nil {
			return nil, false, game.ErrNoPendingSelection
		}
		var names []string
		for _, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil || n < 1 || n > len(p.Candidates) {
				return nil, false, fmt.Errorf("each number must be between 1 and %d", len(p.Candidates))
			}
			names = append(names, p.Candidates[n-1])
		}
		c.takePending()
		return &ClientMessage{Type: MsgAnswer, SelectionID: p.ID, Names: names}, false, nil
	}
	return &ClientMessage{Type: MsgCommand, Line: line}, false, nil
}

func (c *Client) takePending() *game.PendingSelection {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pending
	c.pending = nil
	return p
}

const helpText = `Commands:
  play <card>           play a card from your hand
  discard <card>        discard a card
  draw                  pay energy to draw a card
  recycle               pay energy to put the top discard under the draw pile
  pick <card> | skip    answer the current offer
  select <n>... | cancel  answer a pending selection
  add-energy|add-money|add-reputation <n>
  reset [difficulty] | infinity | continue | quit`

func renderEvent(w io.Writer, ev *EventView) {
	if ev == nil {
		return
	}
	typ := ev.Type
	for len(typ) < 12 {
		typ += " "
	}
	fmt.Fprintf(w, "D%-3d %s| %s\n", ev.Day+1, typ, ev.Details)
}

func renderState(w io.Writer, s *game.Snapshot) {
	if s == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(w, "║  Day %d  Week %d  Month %d  (%s)\n", s.DayIndex+1, s.Week, s.Month, s.Difficulty)
	fmt.Fprintf(w, "║  Energy %d/%d  Reputation %d/%d  Money $%d/$%d\n",
		s.Energy, s.EnergyMax, s.Reputation, s.ReputationMax, s.Money, s.MoneyTarget)
	fmt.Fprintf(w, "║  Draw: %d  Discard: %d  Score: %d\n", len(s.Draw), len(s.Discard), s.Score)
	if len(s.Upgrades) > 0 {
		var ups []string
		for _, u := range s.Upgrades {
			ups = append(ups, fmt.Sprintf("%s %d/%d", u.Name, u.Cumul, u.Max))
		}
		fmt.Fprintf(w, "║  Upgrades: %s\n", strings.Join(ups, ", "))
	}
	if len(s.Modifiers) > 0 {
		var mods []string
		for _, m := range s.Modifiers {
			mods = append(mods, m.Name)
		}
		fmt.Fprintf(w, "║  Modifiers: %s\n", strings.Join(mods, ", "))
	}
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	for i, cv := range s.Hand {
		mark := " "
		if cv.Playable {
			mark = "*"
		}
		fmt.Fprintf(w, "║ %s[%d] %-16s %-12s %s\n", mark, i+1, cv.Name, cv.CostText, cv.Description)
	}
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	if len(s.Offer) > 0 {
		var names []string
		for _, cv := range s.Offer {
			names = append(names, cv.Name)
		}
		fmt.Fprintf(w, "Offer (%d pending): %s\n", s.PendingOffers, strings.Join(names, " | "))
	}
	if s.LastError != "" {
		fmt.Fprintf(w, "Error: %s (type 'continue' to dismiss)\n", s.LastError)
	}
}

func renderSelection(w io.Writer, p *game.PendingSelection) {
	if p == nil {
		return
	}
	fmt.Fprintf(w, "\n%s: %s (select %d", p.Card, p.Prompt, p.Min)
	if p.Max != p.Min {
		fmt.Fprintf(w, "-%d", p.Max)
	}
	fmt.Fprintln(w, ")")
	for i, name := range p.Candidates {
		fmt.Fprintf(w, "  %d) %s\n", i+1, name)
	}
}
