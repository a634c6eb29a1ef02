package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Command names accepted by Dispatch.
const (
	CmdDraw          = "draw"
	CmdDiscard       = "discard"
	CmdRecycle       = "recycle"
	CmdPlay          = "play"
	CmdPick          = "pick"
	CmdSkip          = "skip"
	CmdAddEnergy     = "add-energy"
	CmdAddMoney      = "add-money"
	CmdAddReputation = "add-reputation"
	CmdReset         = "reset"
	CmdInfinity      = "infinity"
	CmdContinue      = "continue"
)

// Command is a serializable request against the engine.
type Command struct {
	Name       string `json:"name"`
	Card       string `json:"card,omitempty"`
	Amount     int    `json:"amount,omitempty"`
	Free       bool   `json:"free,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Dispatch routes a command to the matching engine operation.
func (e *Engine) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Name {
	case CmdDraw:
		_, err := e.Draw(ctx)
		return err
	case CmdDiscard:
		return e.Discard(ctx, cmd.Card)
	case CmdRecycle:
		return e.Recycle(ctx)
	case CmdPlay:
		return e.Play(ctx, cmd.Card, PlayOptions{Free: cmd.Free})
	case CmdPick:
		return e.Pick(ctx, cmd.Card)
	case CmdSkip:
		return e.Skip(ctx)
	case CmdAddEnergy:
		return e.AddEnergy(ctx, cmd.Amount)
	case CmdAddMoney:
		return e.AddMoney(ctx, cmd.Amount)
	case CmdAddReputation:
		return e.AddReputation(ctx, cmd.Amount)
	case CmdReset:
		d := e.difficulty
		if cmd.Difficulty != "" {
			parsed, err := ParseDifficulty(cmd.Difficulty)
			if err != nil {
				return err
			}
			d = parsed
		}
		return e.Reset(ctx, d)
	case CmdInfinity:
		return e.EnableInfinity(ctx)
	case CmdContinue:
		e.ClearError()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
}

// ParseCommand reads a text command such as "play prettier" or
// "add-money 500". Card names are matched loosely.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}
	cmd := Command{Name: strings.ToLower(fields[0])}
	arg := strings.Join(fields[1:], " ")

	switch cmd.Name {
	case CmdPlay, CmdDiscard, CmdPick:
		if arg == "" {
			return cmd, fmt.Errorf("usage: %s <card>", cmd.Name)
		}
		name, err := ResolveCardName(arg)
		if err != nil {
			return cmd, err
		}
		cmd.Card = name
	case CmdAddEnergy, CmdAddMoney, CmdAddReputation:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return cmd, fmt.Errorf("usage: %s <amount>", cmd.Name)
		}
		cmd.Amount = n
	case CmdReset:
		cmd.Difficulty = arg
	case CmdDraw, CmdRecycle, CmdSkip, CmdInfinity, CmdContinue:
	default:
		return cmd, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	return cmd, nil
}

// --- Public operations ---

// Draw pays the draw cost and draws one card.
func (e *Engine) Draw(ctx context.Context) ([]string, error) {
	var drawn []string
	err := e.run(ctx, CmdDraw, false, func(ctx context.Context) error {
		var err error
		drawn, err = e.drawCard(ctx, 1, DrawOptions{Paid: true})
		return err
	})
	return drawn, err
}

// Discard throws a hand card onto the discard pile.
func (e *Engine) Discard(ctx context.Context, name string) error {
	return e.run(ctx, CmdDiscard, false, func(ctx context.Context) error {
		return e.discardCard(ctx, DiscardOptions{Names: []string{name}})
	})
}

// Recycle pays the draw cost to move the top discard under the draw pile.
func (e *Engine) Recycle(ctx context.Context) error {
	return e.run(ctx, CmdRecycle, false, func(ctx context.Context) error {
		if len(e.st.Discard) == 0 {
			return fmt.Errorf("%w: discard", ErrEmptyPile)
		}
		cost := EnergyCost(e.balance.DrawCost)
		if !CanAfford(e.st, cost) {
			return fmt.Errorf("%w: recycle costs %s", ErrCannotAfford, cost)
		}
		if err := e.payCost(ctx, cost, CmdRecycle); err != nil {
			return err
		}
		if _, err := e.recycleCard(ctx, RecycleOptions{Count: 1}); err != nil {
			return err
		}
		return e.advanceTime(ctx, cost.EnergyEquivalent(e.balance))
	})
}

// Play plays a card from the hand.
func (e *Engine) Play(ctx context.Context, name string, opts PlayOptions) error {
	return e.run(ctx, CmdPlay+" "+name, false, func(ctx context.Context) error {
		return e.playCard(ctx, name, opts)
	})
}

// Pick takes a card from the current offer.
func (e *Engine) Pick(ctx context.Context, name string) error {
	return e.run(ctx, CmdPick, false, func(ctx context.Context) error {
		return e.pickOption(ctx, name)
	})
}

// Skip declines the current offer.
func (e *Engine) Skip(ctx context.Context) error {
	return e.run(ctx, CmdSkip, false, e.skipOption)
}

func (e *Engine) AddEnergy(ctx context.Context, amount int) error {
	return e.run(ctx, CmdAddEnergy, false, func(ctx context.Context) error {
		return e.addEnergy(ctx, amount, "manual")
	})
}

func (e *Engine) AddMoney(ctx context.Context, amount int) error {
	return e.run(ctx, CmdAddMoney, false, func(ctx context.Context) error {
		return e.addMoney(ctx, amount, "manual")
	})
}

func (e *Engine) AddReputation(ctx context.Context, amount int) error {
	return e.run(ctx, CmdAddReputation, false, func(ctx context.Context) error {
		return e.addReputation(ctx, amount, "manual")
	})
}

// Reset discards the session and deals a new one. Meta stats are kept.
func (e *Engine) Reset(ctx context.Context, d Difficulty) error {
	return e.run(ctx, CmdReset, true, func(ctx context.Context) error {
		e.difficulty = d
		return e.newSession(ctx, d)
	})
}

// EnableInfinity keeps the session going past the money target. A won
// session is reopened; a lost one stays lost.
func (e *Engine) EnableInfinity(ctx context.Context) error {
	return e.run(ctx, CmdInfinity, true, func(ctx context.Context) error {
		st := e.st
		st.InfinityMode = true
		if st.IsGameOver && st.IsWon {
			st.IsGameOver, st.IsWon, st.Reason, st.Announced = false, false, "", false
		}
		return nil
	})
}

// ClearError dismisses the last recorded fault.
func (e *Engine) ClearError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.st == nil {
		return
	}
	e.st.LastError = ""
	e.publish()
}
