package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/peterkuimelis/devdeck/internal/store"
)

// SaveVersion marks the session format. A save with any other version is
// discarded.
const SaveVersion = 1

const (
	sessionKey = "session"
	metaKey    = "meta"
)

var ErrVersionMismatch = errors.New("save version mismatch")

// SaveFile is the persisted session envelope.
type SaveFile struct {
	Version int    `json:"version"`
	Session *State `json:"session"`
}

// EncodeSession serializes a session. Derived views never reach the save.
func EncodeSession(st *State) ([]byte, error) {
	data, err := json.Marshal(SaveFile{Version: SaveVersion, Session: st})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

// DecodeSession parses a save and re-attaches the balance.
func DecodeSession(data []byte, b Balance) (*State, error) {
	var sf SaveFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if sf.Version != SaveVersion || sf.Session == nil {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, sf.Version, SaveVersion)
	}
	st := sf.Session
	st.Balance = b
	st.Operations = map[string]int{}
	for _, p := range allPiles {
		for _, ci := range *st.pile(p) {
			if _, ok := CardRegistry[ci.Name]; !ok {
				return nil, fmt.Errorf("%w: saved card %q", ErrUnknownCard, ci.Name)
			}
		}
	}
	return st, nil
}

func loadSession(ctx context.Context, s store.Store, b Balance) (*State, error) {
	data, err := s.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	return DecodeSession(data, b)
}

func loadMeta(ctx context.Context, s store.Store) (*Meta, error) {
	data, err := s.Get(ctx, metaKey)
	if errors.Is(err, store.ErrNotFound) {
		return NewMeta(), nil
	}
	if err != nil {
		return nil, err
	}
	m := NewMeta()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse meta: %w", err)
	}
	return m, nil
}

func isMissingSave(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// save writes the session and meta stats.
func (e *Engine) save(ctx context.Context) error {
	data, err := EncodeSession(e.st)
	if err != nil {
		return err
	}
	if err := e.store.Put(ctx, sessionKey, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	meta, err := json.Marshal(e.meta)
	if err != nil {
		return fmt.Errorf("failed to marshal meta: %w", err)
	}
	if err := e.store.Put(ctx, metaKey, meta); err != nil {
		return fmt.Errorf("failed to save meta: %w", err)
	}
	return nil
}
