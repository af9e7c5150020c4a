package interact

import "errors"

var (
	// ErrTimeout marks waits and scripts that ran out of budget.
	// Assertions treat these differently from interaction failures.
	ErrTimeout = errors.New("interact: timed out")

	// ErrInteraction marks element operations the page rejected.
	ErrInteraction = errors.New("interact: interaction failed")
)
