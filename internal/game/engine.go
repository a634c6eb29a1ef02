package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/log"
	"github.com/peterkuimelis/devdeck/internal/store"
)

// DefaultDeck is the starting deck when none is configured.
var DefaultDeck = []string{"Prettier", "Knex", "Jest", "Processing"}

// EngineConfig holds configuration for creating an engine.
type EngineConfig struct {
	Balance      Balance    // zero value means DefaultBalance
	Difficulty   Difficulty // zero value is normal
	Speed        float64    // pacing multiplier; 0 disables delays
	Seed         int64      // RNG seed (0 for random)
	NoShuffle    bool       // keep the starting deck order (for deterministic tests)
	StartingDeck []string
	Logger       *zap.Logger
	Events       log.EventLogger
	Selector     Selector
	Cues         CueBank
	Banner       Banner
	Store        store.Store
	// Strict re-panics on faults instead of recording them.
	Strict bool
}

// Engine owns one session and serializes every command against it.
type Engine struct {
	mu sync.Mutex

	st   *State
	meta *Meta

	balance    Balance
	difficulty Difficulty
	speed      float64
	noShuffle  bool
	deck       []string

	logger   *zap.Logger
	events   log.EventLogger
	rng      *rand.Rand
	selector Selector
	cues     CueBank
	banner   Banner
	store    store.Store
	strict   bool

	snapshot  atomic.Pointer[Snapshot]
	obsMu     sync.Mutex
	observers map[int]func(*Snapshot)
	nextObs   int

	ctx context.Context
}

// NewEngine creates an engine from the given config. Call Start before
// issuing commands.
func NewEngine(cfg EngineConfig) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	events := cfg.Events
	if events == nil {
		events = log.NewMemoryLogger()
	}
	selector := cfg.Selector
	if selector == nil {
		selector = CancelSelector{}
	}
	var cues CueBank = nopCues{}
	if cfg.Cues != nil {
		cues = cfg.Cues
	}
	var banner Banner = nopBanner{}
	if cfg.Banner != nil {
		banner = cfg.Banner
	}
	st := cfg.Store
	if st == nil {
		st = store.NewMemoryStore()
	}
	deck := cfg.StartingDeck
	if len(deck) == 0 {
		deck = DefaultDeck
	}
	difficulty := cfg.Difficulty
	if difficulty < DifficultyNormal || difficulty > DifficultyExpert {
		logger.Warn("unknown difficulty, playing normal", zap.Int("difficulty", int(difficulty)))
		difficulty = DifficultyNormal
	}
	return &Engine{
		meta:       NewMeta(),
		balance:    cfg.Balance.withDefaults(),
		difficulty: difficulty,
		speed:      cfg.Speed,
		noShuffle:  cfg.NoShuffle,
		deck:       append([]string(nil), deck...),
		logger:     logger,
		events:     events,
		rng:        rand.New(rand.NewSource(seed)),
		selector:   selector,
		cues:       cues,
		banner:     banner,
		store:      st,
		strict:     cfg.Strict,
		observers:  map[int]func(*Snapshot){},
		ctx:        context.Background(),
	}
}

// Start loads the saved meta stats and session, or deals a fresh session
// when there is none.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctx = ctx

	meta, err := loadMeta(ctx, e.store)
	if err != nil {
		e.logger.Warn("meta stats unreadable, starting fresh", zap.Error(err))
		meta = NewMeta()
	}
	e.meta = meta

	st, err := loadSession(ctx, e.store, e.balance)
	if err == nil {
		e.st = st
		e.logger.Info("session restored", zap.String("session", st.ID), zap.Int("day", st.DayIndex()))
		e.settle()
		return nil
	}
	if !isMissingSave(err) {
		e.logger.Warn("saved session discarded", zap.Error(err))
	}
	return e.newSession(ctx, e.difficulty)
}

// newSession deals a fresh session. Callers hold e.mu.
func (e *Engine) newSession(ctx context.Context, d Difficulty) error {
	e.st = NewState(uuid.NewString(), e.balance, d)
	e.log(log.NewResetEvent(e.st.ID))
	e.logger.Info("new session", zap.String("session", e.st.ID), zap.String("difficulty", d.String()))

	release := e.acquire("reset")
	defer release()

	for _, name := range e.deck {
		if e.st.Owns(name) {
			return fmt.Errorf("%w: %s appears twice in the starting deck", ErrDuplicateCard, name)
		}
		e.st.putTop(PileDraw, NewInstance(LookupCard(name), e.rng))
	}
	if !e.noShuffle {
		e.rng.Shuffle(len(e.st.Draw), func(i, j int) {
			e.st.Draw[i], e.st.Draw[j] = e.st.Draw[j], e.st.Draw[i]
		})
	}
	if _, err := e.drawCard(ctx, e.balance.InitialHandSize, DrawOptions{}); err != nil {
		return err
	}
	e.offerChoice()
	return nil
}

// run executes one public command: serialized, guarded, and settled.
func (e *Engine) run(ctx context.Context, name string, allowOver bool, fn func(ctx context.Context) error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st == nil {
		return ErrNotStarted
	}
	e.ctx = ctx
	if !allowOver && e.st.IsGameOver {
		return ErrGameOver
	}

	defer e.guard(name, &err)
	release := e.acquire(name)
	defer release()
	return fn(ctx)
}

// guard converts panics into errors and records faults on the session.
func (e *Engine) guard(name string, errp *error) {
	if r := recover(); r != nil {
		if e.strict {
			panic(r)
		}
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		*errp = fmt.Errorf("%s: %w", name, err)
		e.fault(name, *errp)
		return
	}
	if *errp != nil && !IsRuleError(*errp) {
		e.fault(name, *errp)
	}
}

func (e *Engine) fault(command string, err error) {
	e.st.LastError = err.Error()
	e.logger.Error("command failed", zap.String("command", command), zap.Error(err))
	e.log(log.NewErrorEvent(e.st.DayIndex(), err))
	e.publish()
}

func (e *Engine) log(ev log.GameEvent) {
	e.events.Log(ev)
}

// Events returns the game event journal.
func (e *Engine) Events() log.EventLogger {
	return e.events
}

// Selector returns the selector used for pre-play choices.
func (e *Engine) Selector() Selector {
	return e.selector
}

// Balance returns the economy constants in use.
func (e *Engine) Balance() Balance {
	return e.balance
}

// SetSpeed changes the pacing multiplier. It never affects game logic.
func (e *Engine) SetSpeed(speed float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.speed = speed
}
