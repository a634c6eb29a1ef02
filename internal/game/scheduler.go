package game

import (
	"context"

	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/log"
)

// acquire records name in the operation set and returns its release. The
// release is meant to be deferred so it runs on every exit path. When the
// last operation is released the engine settles.
func (e *Engine) acquire(name string) func() {
	if e.st.Operations == nil {
		e.st.Operations = map[string]int{}
	}
	e.st.Operations[name]++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		e.st.Operations[name]--
		if e.st.Operations[name] <= 0 {
			delete(e.st.Operations, name)
		}
		if len(e.st.Operations) == 0 {
			e.settle()
		}
	}
}

// Busy reports whether any operation is in flight.
func (e *Engine) Busy() bool {
	return len(e.st.Operations) > 0
}

// settle runs once every operation has finished: it derives the outcome,
// updates discoveries and achievements, persists and publishes.
func (e *Engine) settle() {
	st := e.st
	ctx := context.WithoutCancel(e.ctx)

	if !st.IsGameOver {
		if out := Evaluate(st); out.Over {
			st.IsGameOver, st.IsWon, st.Reason = true, out.Won, out.Reason
		}
	}
	if st.IsGameOver && !st.Announced {
		e.finishGame(ctx)
	}

	for _, p := range allPiles {
		for _, ci := range *st.pile(p) {
			if e.meta.Discover(ci.Name) {
				e.log(log.NewDiscoveryEvent(st.DayIndex(), ci.Name))
			}
		}
	}
	e.checkAchievements(ctx)

	if err := e.save(ctx); err != nil {
		st.LastError = err.Error()
		e.logger.Warn("save failed", zap.String("session", st.ID), zap.Error(err))
	}
	e.publish()
}

// finishGame announces the outcome and counts the game in the meta stats
// the first time the session ends.
func (e *Engine) finishGame(ctx context.Context) {
	st := e.st
	st.Announced = true
	score := Score(st)
	if !st.Recorded {
		st.Recorded = true
		e.meta.RecordGame(score, st.IsWon)
	}
	if st.IsWon {
		e.log(log.NewWinEvent(st.DayIndex(), st.Money, score))
		e.cues.Play(CueWin)
		_ = e.announce(ctx, "You made it!")
	} else {
		e.log(log.NewGameOverEvent(st.DayIndex(), st.Reason, score))
		e.cues.Play(CueLose)
		_ = e.announce(ctx, "Game over: "+st.Reason)
	}
	e.logger.Info("game finished",
		zap.String("session", st.ID),
		zap.Bool("won", st.IsWon),
		zap.String("reason", st.Reason),
		zap.Int("score", score),
	)
}
