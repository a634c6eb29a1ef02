package log

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	events := l.Events()
	if len(events) == 0 {
		return GameEvent{}
	}
	return events[len(events)-1]
}

// Since returns the events with a sequence number greater than seq.
func (l *MemoryLogger) Since(seq int) []GameEvent {
	var result []GameEvent
	for _, e := range l.Events() {
		if e.Seq > seq {
			result = append(result, e)
		}
	}
	return result
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- ZapLogger: mirrors events into a structured zap logger ---

type ZapLogger struct {
	MemoryLogger
	logger *zap.Logger
}

func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fields := []zap.Field{
		zap.String("type", event.Type.String()),
		zap.Int("day", event.Day),
	}
	if event.Card != "" {
		fields = append(fields, zap.String("card", event.Card))
	}
	if event.Type == EventError {
		l.logger.Warn(event.Details, fields...)
		return
	}
	l.logger.Debug(event.Details, fields...)
}

// --- Tee: journals through a primary logger and copies to others ---

type teeLogger struct {
	primary EventLogger
	copies  []EventLogger
}

// Tee returns a logger whose journal is primary's. Each event is copied to
// the others after primary has numbered it.
func Tee(primary EventLogger, others ...EventLogger) EventLogger {
	return &teeLogger{primary: primary, copies: others}
}

func (t *teeLogger) Log(event GameEvent) {
	t.primary.Log(event)
	if events := t.primary.Events(); len(events) > 0 {
		event = events[len(events)-1]
	}
	for _, c := range t.copies {
		c.Log(event)
	}
}

func (t *teeLogger) Events() []GameEvent {
	return t.primary.Events()
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	for len(kind) < 16 {
		kind += " "
	}
	return fmt.Sprintf("D%-3d %s| %s", e.Day+1, kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewDrawEvent(day int, cardName string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("Draws %s", cardName),
	}
}

func NewDiscardEvent(day int, cardName string, toDraw bool) GameEvent {
	where := "discard pile"
	if toDraw {
		where = "bottom of the draw pile"
	}
	return GameEvent{
		Day:     day,
		Type:    EventDiscard,
		Card:    cardName,
		Details: fmt.Sprintf("Discards %s to the %s", cardName, where),
	}
}

func NewRecycleEvent(day int, cardName string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventRecycle,
		Card:    cardName,
		Details: fmt.Sprintf("Recycles %s from the discard pile", cardName),
	}
}

func NewPlayEvent(day int, cardName string, cost string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventPlay,
		Card:    cardName,
		Details: fmt.Sprintf("Plays %s (%s)", cardName, cost),
	}
}

func NewRemoveEvent(day int, cardName string, reason string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventRemove,
		Card:    cardName,
		Details: fmt.Sprintf("%s is removed from the game (%s)", cardName, reason),
	}
}

func NewAddToHandEvent(day int, cardName string, reason string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventAddToHand,
		Card:    cardName,
		Details: fmt.Sprintf("%s is added to the hand (%s)", cardName, reason),
	}
}

func NewResourceChangeEvent(day int, resource string, oldValue, newValue int, reason string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventResourceChange,
		Details: fmt.Sprintf("%s: %d → %d (%s)", resource, oldValue, newValue, reason),
	}
}

func NewUpgradeAcquiredEvent(day int, name string, cumul, max int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventUpgradeAcquired,
		Card:    name,
		Details: fmt.Sprintf("Upgrade %s acquired (%d/%d)", name, cumul, max),
	}
}

func NewUpgradeTriggerEvent(day int, name string, event string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventUpgradeTrigger,
		Card:    name,
		Details: fmt.Sprintf("%s triggers on %s", name, event),
	}
}

func NewModifierAddedEvent(day int, name string, reason string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventModifierAdded,
		Details: fmt.Sprintf("Modifier %s is active (%s)", name, reason),
	}
}

func NewModifierFiredEvent(day int, cardName string, name string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventModifierFired,
		Card:    cardName,
		Details: fmt.Sprintf("Modifier %s applies to %s", name, cardName),
	}
}

func NewDayEvent(day int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventNewDay,
		Details: fmt.Sprintf("--- Day %d ---", day+1),
	}
}

func NewWeekEvent(day int, week int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventNewWeek,
		Details: fmt.Sprintf("=== Week %d ===", week+1),
	}
}

func NewMonthEvent(day int, month int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventNewMonth,
		Details: fmt.Sprintf("=== Month %d ===", month+1),
	}
}

func NewInflationEvent(day int, inflation int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventInflation,
		Details: fmt.Sprintf("Inflation rises to %d", inflation),
	}
}

func NewChoiceOfferedEvent(day int, options []string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventChoiceOffered,
		Details: fmt.Sprintf("New card offer: %s", strings.Join(options, ", ")),
	}
}

func NewChoicePickedEvent(day int, cardName string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventChoicePicked,
		Card:    cardName,
		Details: fmt.Sprintf("Picks %s", cardName),
	}
}

func NewChoiceSkippedEvent(day int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventChoiceSkipped,
		Details: "Skips the card offer",
	}
}

func NewDiscoveryEvent(day int, cardName string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventDiscovery,
		Card:    cardName,
		Details: fmt.Sprintf("Discovered %s", cardName),
	}
}

func NewAchievementEvent(day int, name string) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventAchievement,
		Details: fmt.Sprintf("Achievement unlocked: %s", name),
	}
}

func NewWinEvent(day int, money int, score int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventWin,
		Details: fmt.Sprintf("Target reached with $%d! Score %d", money, score),
	}
}

func NewGameOverEvent(day int, reason string, score int) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventGameOver,
		Details: fmt.Sprintf("Game over (%s). Score %d", reason, score),
	}
}

func NewResetEvent(sessionID string) GameEvent {
	return GameEvent{
		Type:    EventReset,
		Details: fmt.Sprintf("New session %s", sessionID),
	}
}

func NewErrorEvent(day int, err error) GameEvent {
	return GameEvent{
		Day:     day,
		Type:    EventError,
		Details: fmt.Sprintf("Error: %v", err),
	}
}
