package game

import "errors"

// Rule violations. They are returned to the caller but are not session
// faults.
var (
	ErrCardNotInHand     = errors.New("card is not in hand")
	ErrConditionNotMet   = errors.New("card condition not met")
	ErrCannotAfford      = errors.New("cannot afford card")
	ErrGameOver          = errors.New("game is over")
	ErrNoPendingChoice   = errors.New("no pending card offer")
	ErrNotAnOption       = errors.New("card is not part of the current offer")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrUnknownCard       = errors.New("unknown card")
	ErrUpgradeMaxed      = errors.New("upgrade already at max stack")
	ErrSelectionCanceled = errors.New("selection canceled")
	ErrHandFull          = errors.New("hand is full")
	ErrEmptyPile         = errors.New("pile is empty")
	ErrDuplicateCard     = errors.New("card already in play")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrNotStarted        = errors.New("engine not started")
)

var ruleErrors = []error{
	ErrCardNotInHand,
	ErrConditionNotMet,
	ErrCannotAfford,
	ErrGameOver,
	ErrNoPendingChoice,
	ErrNotAnOption,
	ErrUnknownCommand,
	ErrUnknownCard,
	ErrUpgradeMaxed,
	ErrSelectionCanceled,
	ErrHandFull,
	ErrEmptyPile,
	ErrDuplicateCard,
	ErrUnknownDifficulty,
}

// IsRuleError reports whether err is a rule violation rather than a fault.
func IsRuleError(err error) bool {
	for _, target := range ruleErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
