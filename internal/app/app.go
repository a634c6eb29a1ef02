// Package app wires configuration, logging, storage and the engine
// together for the devdeck binaries.
package app

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/peterkuimelis/devdeck/internal/config"
	"github.com/peterkuimelis/devdeck/internal/game"
	"github.com/peterkuimelis/devdeck/internal/log"
	"github.com/peterkuimelis/devdeck/internal/store"
)

// NewLogger builds a production zap logger at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}

// ResolveDeck picks a starting deck: empty for the built-in deck, otherwise
// a 1-based number or a deck name from deckFile.
func ResolveDeck(deckFile, deck string) ([]string, error) {
	if deck == "" {
		return game.DefaultDeck, nil
	}
	if n, err := strconv.Atoi(deck); err == nil {
		_, cards, err := game.DeckByNumber(deckFile, n)
		return cards, err
	}
	return game.DeckByName(deckFile, deck)
}

// Runtime is a started engine and the resources it holds.
type Runtime struct {
	Engine   *game.Engine
	Selector *game.ChannelSelector
	Store    store.Store
	Logger   *zap.Logger
}

// Close releases the store.
func (r *Runtime) Close() error {
	return r.Store.Close()
}

// Options adjusts the engine a binary starts.
type Options struct {
	Cues   game.CueBank
	Banner game.Banner
	// Journal also receives every game event, e.g. a TextLogger for the
	// terminal.
	Journal log.EventLogger
}

// Start opens storage and starts an engine from cfg.
func Start(ctx context.Context, cfg config.Config, logger *zap.Logger, opts Options) (*Runtime, error) {
	difficulty, err := cfg.Difficulty()
	if err != nil {
		return nil, err
	}
	deck, err := ResolveDeck(cfg.Game.DeckFile, cfg.Game.Deck)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var events log.EventLogger = log.NewZapLogger(logger.Named("events"))
	if opts.Journal != nil {
		events = log.Tee(events, opts.Journal)
	}

	selector := game.NewChannelSelector(cfg.Game.SelectionTimeout)
	engine := game.NewEngine(game.EngineConfig{
		Balance:      cfg.Balance,
		Difficulty:   difficulty,
		Speed:        cfg.Game.Speed,
		Seed:         cfg.Game.Seed,
		StartingDeck: deck,
		Logger:       logger.Named("engine"),
		Events:       events,
		Selector:     selector,
		Cues:         opts.Cues,
		Banner:       opts.Banner,
		Store:        st,
		Strict:       cfg.Game.Strict,
	})
	if err := engine.Start(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("start engine: %w", err)
	}
	logger.Info("engine started",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("difficulty", difficulty.String()),
		zap.Int("deck_size", len(deck)))

	return &Runtime{Engine: engine, Selector: selector, Store: st, Logger: logger}, nil
}
