package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/devdeck/internal/game"
	devnet "github.com/peterkuimelis/devdeck/internal/net"
)

type fixture struct {
	engine *game.Engine
	hub    *Hub
	server *Server
	http   *httptest.Server
}

func newFixture(t *testing.T, deck []string) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	sel := game.NewChannelSelector(5 * time.Second)
	hub := NewHub(nil)
	e := game.NewEngine(game.EngineConfig{
		Seed:         1,
		NoShuffle:    true,
		StartingDeck: deck,
		Selector:     sel,
		Cues:         hub,
		Banner:       hub,
	})
	require.NoError(t, e.Start(ctx))
	hub.Attach(ctx, e, sel)

	decks := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(decks, []byte("decks:\n  - name: Starter\n    cards: [Prettier, Knex, Jest, Processing]\n"), 0644))

	srv := NewServer(e, sel, hub, Options{DecksFile: decks, RequestTimeout: 10 * time.Second})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &fixture{engine: e, hub: hub, server: srv, http: ts}
}

func (f *fixture) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(f.http.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestGetState(t *testing.T) {
	f := newFixture(t, nil)
	resp, err := http.Get(f.http.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeBody[game.Snapshot](t, resp)
	assert.Equal(t, f.engine.Snapshot().SessionID, snap.SessionID)
	assert.Len(t, snap.Hand, len(game.DefaultDeck))
}

func TestCommands(t *testing.T) {
	f := newFixture(t, nil)
	before := f.engine.Snapshot().Money

	resp := f.post(t, "/api/commands", map[string]any{"name": "add-money", "amount": 500})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decodeBody[game.Snapshot](t, resp)
	assert.Equal(t, before+500, snap.Money)

	resp = f.post(t, "/api/commands", map[string]any{"line": "add-energy -2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 18, f.engine.Snapshot().Energy)

	resp = f.post(t, "/api/commands/skip", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCommandErrors(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"unparseable line", map[string]any{"line": "fly away"}, http.StatusBadRequest},
		{"unknown command", map[string]any{"name": "fly"}, http.StatusBadRequest},
		{"unknown card", map[string]any{"name": "play", "card": "zzzzzz"}, http.StatusBadRequest},
		{"card not in hand", map[string]any{"name": "play", "card": "Startup Exit"}, http.StatusConflict},
		{"unknown difficulty", map[string]any{"name": "reset", "difficulty": "nightmare"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.post(t, "/api/commands", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			body := decodeBody[map[string]string](t, resp)
			assert.NotEmpty(t, body["error"])
		})
	}
	assert.Empty(t, f.engine.Snapshot().LastError, "rejected commands are not faults")
}

func TestCardsAndDecks(t *testing.T) {
	f := newFixture(t, nil)

	resp, err := http.Get(f.http.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()
	cards := decodeBody[[]game.CardView](t, resp)
	assert.Len(t, cards, len(game.CardNames()))

	resp, err = http.Get(f.http.URL + "/api/decks")
	require.NoError(t, err)
	defer resp.Body.Close()
	decks := decodeBody[[]DeckInfo](t, resp)
	require.Len(t, decks, 1)
	assert.Equal(t, DeckInfo{Number: 1, Name: "Starter", Cards: []string{"Prettier", "Knex", "Jest", "Processing"}}, decks[0])
}

func TestEventsSince(t *testing.T) {
	f := newFixture(t, nil)

	resp, err := http.Get(f.http.URL + "/api/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	all := decodeBody[[]devnet.EventView](t, resp)
	require.NotEmpty(t, all)

	last := all[len(all)-1].Seq
	resp, err = http.Get(f.http.URL + "/api/events?since=" + strconv.Itoa(last))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Empty(t, decodeBody[[]devnet.EventView](t, resp))

	resp, err = http.Get(f.http.URL + "/api/events?since=abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelectionOverHTTP(t *testing.T) {
	f := newFixture(t, []string{"Freelance Gig", "Knex", "Jest", "Prettier", "Processing", "Webpack"})
	var hand []string
	for _, cv := range f.engine.Snapshot().Hand {
		hand = append(hand, cv.Name)
	}
	require.Contains(t, hand, "Webpack", "Webpack starts in hand")

	played := make(chan int, 1)
	go func() {
		data, _ := json.Marshal(map[string]any{"name": "play", "card": "Webpack"})
		resp, err := http.Post(f.http.URL+"/api/commands", "application/json", bytes.NewReader(data))
		if err != nil {
			played <- 0
			return
		}
		resp.Body.Close()
		played <- resp.StatusCode
	}()

	var pending *game.PendingSelection
	require.Eventually(t, func() bool {
		resp, err := http.Get(f.http.URL + "/api/selection")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		p := decodeBody[game.PendingSelection](t, resp)
		pending = &p
		return true
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Webpack", pending.Card)

	resp := f.post(t, "/api/selection", map[string]any{"id": pending.ID, "names": []string{"Webpack"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "the played card is not a candidate")

	resp = f.post(t, "/api/selection", map[string]any{"id": pending.ID, "names": []string{"Knex"}})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	select {
	case status := <-played:
		assert.Equal(t, http.StatusOK, status)
	case <-time.After(5 * time.Second):
		t.Fatal("play did not finish")
	}

	resp = f.post(t, "/api/selection", map[string]any{"id": pending.ID, "names": []string{"Knex"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketStreams(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	expect := func(typ string) devnet.ServerMessage {
		t.Helper()
		for {
			var msg devnet.ServerMessage
			require.NoError(t, wsjson.Read(ctx, conn, &msg))
			if msg.Type == typ {
				return msg
			}
		}
	}

	first := expect(devnet.MsgState)
	require.NotNil(t, first.State)
	assert.Equal(t, 1, f.hub.Clients())

	require.NoError(t, f.hub.Show(ctx, "Week 2"))
	assert.Equal(t, "Week 2", expect(devnet.MsgBanner).Text)

	before := first.State.Money
	require.NoError(t, wsjson.Write(ctx, conn, devnet.ClientMessage{Type: devnet.MsgCommand, Line: "add-money 250"}))
	state := expect(devnet.MsgState)
	assert.Equal(t, before+250, state.State.Money)
	assert.NotEmpty(t, state.Events)
	assert.Equal(t, game.CmdAddMoney, expect(devnet.MsgResult).Command)

	require.NoError(t, wsjson.Write(ctx, conn, devnet.ClientMessage{Type: devnet.MsgCommand, Line: "play startup exit"}))
	assert.Contains(t, expect(devnet.MsgError).Error, "not in hand")

	conn.Close(websocket.StatusNormalClosure, "")
}

func TestHubCuesReachClients(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var msg devnet.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, devnet.MsgState, msg.Type)

	f.hub.Play(game.CueWin)
	for {
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
		if msg.Type == devnet.MsgCue {
			break
		}
	}
	assert.Equal(t, string(game.CueWin), msg.Cue)
}
