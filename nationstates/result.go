package nationstates

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/s0up4200/nsping/notices"
)

// Outcome classifies the API's answer to a login.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomeBadCredential
	OutcomeNotFound
	OutcomeTooRecent
	OutcomeRateLimited
	OutcomeServerError
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeBadCredential:
		return "bad credential"
	case OutcomeNotFound:
		return "not found"
	case OutcomeTooRecent:
		return "too recent"
	case OutcomeRateLimited:
		return "rate limited"
	case OutcomeServerError:
		return "server error"
	default:
		return "unknown"
	}
}

// ShouldRemove reports whether the nation should be dropped from the store.
func (o Outcome) ShouldRemove() bool {
	return o == OutcomeBadCredential || o == OutcomeNotFound
}

// AbortsBatch reports whether the rest of the batch must be skipped.
func (o Outcome) AbortsBatch() bool {
	switch o {
	case OutcomeRateLimited, OutcomeServerError, OutcomeUnknown:
		return true
	}
	return false
}

// Classify maps an HTTP status code to an Outcome.
func Classify(status int) Outcome {
	switch {
	case status >= 200 && status < 300:
		return OutcomeSuccess
	case status == http.StatusForbidden:
		return OutcomeBadCredential
	case status == http.StatusNotFound:
		return OutcomeNotFound
	case status == http.StatusConflict:
		return OutcomeTooRecent
	case status == http.StatusTooManyRequests:
		return OutcomeRateLimited
	case status >= 500:
		return OutcomeServerError
	default:
		return OutcomeUnknown
	}
}

// Result is the classified response to a login.
type Result struct {
	Outcome Outcome
	Status  int

	// Nation is the id echoed by the API on success, otherwise the requested id.
	Nation string

	// Autologin is the renewed token, empty when the API sent none.
	Autologin string

	RequestsSeen int
	RetryAfter   time.Duration

	// Notices holds the filtered notices on success.
	Notices notices.Nation
}

// Update returns the token to store, if the login produced one.
func (r *Result) Update() (nation, token string, ok bool) {
	if r.Outcome != OutcomeSuccess || r.Autologin == "" {
		return "", "", false
	}
	return r.Nation, r.Autologin, true
}

// ShouldRemove reports whether the nation should be dropped from the store.
func (r *Result) ShouldRemove() bool {
	return r.Outcome.ShouldRemove()
}

// AbortsBatch reports whether the rest of the batch must be skipped.
func (r *Result) AbortsBatch() bool {
	return r.Outcome.AbortsBatch()
}

// requestsSeen reads the rate-limit counter, 0 when absent or malformed.
func requestsSeen(h http.Header) int {
	n, err := strconv.Atoi(strings.TrimSpace(h.Get(HeaderRequestsSeen)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// retryAfter reads Retry-After in seconds, 0 when absent or malformed.
func retryAfter(h http.Header) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get(HeaderRetryAfter)))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
