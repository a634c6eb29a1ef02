package game

import (
	"context"
	"time"
)

// Cue identifies a sound effect.
type Cue string

const (
	CueDraw    Cue = "draw"
	CueDiscard Cue = "discard"
	CuePlay    Cue = "play"
	CueUpgrade Cue = "upgrade"
	CueWin     Cue = "win"
	CueLose    Cue = "lose"
)

// CueBank plays sound cues. Play must not block.
type CueBank interface {
	Play(cue Cue)
}

// Banner shows a transient message and returns once it has been shown.
type Banner interface {
	Show(ctx context.Context, text string) error
}

type nopCues struct{}

func (nopCues) Play(Cue) {}

type nopBanner struct{}

func (nopBanner) Show(context.Context, string) error { return nil }

// Pacing delays, scaled by game speed.
const (
	playDelay   = 400 * time.Millisecond
	bannerDelay = 800 * time.Millisecond
)

// pace waits base/speed. Speed 0 disables pacing; it never changes the
// order of anything.
func (e *Engine) pace(ctx context.Context, base time.Duration) error {
	if e.speed <= 0 {
		return nil
	}
	t := time.NewTimer(time.Duration(float64(base) / e.speed))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// announce shows a banner and paces after it.
func (e *Engine) announce(ctx context.Context, text string) error {
	if err := e.banner.Show(ctx, text); err != nil {
		return err
	}
	return e.pace(ctx, bannerDelay)
}
