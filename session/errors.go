package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/s0up4200/nsping/nationstates"
)

// ErrNoNations is returned by Run when no nations are saved.
var ErrNoNations = errors.New("no nations have been saved")

// AbortError stops the remainder of a batch. It wraps either a classified
// outcome (rate limited, server error, unknown) or an unexpected error.
type AbortError struct {
	Nation     string
	Outcome    nationstates.Outcome
	Status     int
	RetryAfter time.Duration
	Err        error
}

func (e *AbortError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("aborted at %s: %v", e.Nation, e.Err)
	}
	if e.Outcome == nationstates.OutcomeRateLimited && e.RetryAfter > 0 {
		return fmt.Sprintf("aborted at %s: %s (retry after %s)", e.Nation, e.Outcome, e.RetryAfter)
	}
	return fmt.Sprintf("aborted at %s: %s (status %d)", e.Nation, e.Outcome, e.Status)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// IsRateLimited checks if the batch stopped because of the API rate limit
func (e *AbortError) IsRateLimited() bool {
	return e.Outcome == nationstates.OutcomeRateLimited
}

// AccountError reports an outcome that only affects one nation.
type AccountError struct {
	Nation  string
	Outcome nationstates.Outcome
	Err     error
}

func (e *AccountError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Nation, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Nation, e.Outcome)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}
