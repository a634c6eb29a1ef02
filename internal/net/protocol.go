// Package net drives an engine over newline-delimited JSON on a TCP
// connection. The host owns the engine; clients send commands and answer
// pre-play selections.
package net

import (
	"github.com/peterkuimelis/devdeck/internal/game"
	"github.com/peterkuimelis/devdeck/internal/log"
)

// Server message types.
const (
	MsgState    = "state"
	MsgSelect   = "select"
	MsgResult   = "result"
	MsgError    = "error"
	MsgGameOver = "game_over"
	MsgCue      = "cue"
	MsgBanner   = "banner"
)

// Client message types.
const (
	MsgJoin    = "join"
	MsgCommand = "command"
	MsgAnswer  = "answer"
)

// ServerMessage is sent from server to client.
type ServerMessage struct {
	Type      string                 `json:"type"`
	State     *game.Snapshot         `json:"state,omitempty"`
	Events    []*EventView           `json:"events,omitempty"`
	Selection *game.PendingSelection `json:"selection,omitempty"`
	Command   string                 `json:"command,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Won       bool                   `json:"won,omitempty"`
	Result    string                 `json:"result,omitempty"`
	Cue       string                 `json:"cue,omitempty"`
	Text      string                 `json:"text,omitempty"`
}

// EventView is a serializable journal entry.
type EventView struct {
	Seq     int    `json:"seq"`
	Day     int    `json:"day"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

func NewEventView(ev log.GameEvent) *EventView {
	return &EventView{
		Seq:     ev.Seq,
		Day:     ev.Day,
		Type:    ev.Type.String(),
		Card:    ev.Card,
		Details: ev.Details,
	}
}

// ClientMessage is sent from client to server. A command is either a text
// Line ("play prettier") or a structured Command.
type ClientMessage struct {
	Type        string        `json:"type"`
	Name        string        `json:"name,omitempty"`
	Line        string        `json:"line,omitempty"`
	Command     *game.Command `json:"command,omitempty"`
	SelectionID string        `json:"selectionId,omitempty"`
	Names       []string      `json:"names,omitempty"`
	Cancel      bool          `json:"cancel,omitempty"`
}
