package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/nsping/nationstates"
	"github.com/s0up4200/nsping/session"
)

func TestDescribeRunError(t *testing.T) {
	logger = zerolog.Nop()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "no nations",
			err:  session.ErrNoNations,
			want: "no nations have been saved, use 'nsping add' first",
		},
		{
			name: "interrupted",
			err:  context.Canceled,
			want: "run interrupted",
		},
		{
			name: "rate limited with retry-after",
			err:  &session.AbortError{Nation: "a", Outcome: nationstates.OutcomeRateLimited, Status: 429, RetryAfter: 15 * time.Minute},
			want: "the rate limit was exceeded and you've been locked out for 15m0s. Aborting run",
		},
		{
			name: "rate limited",
			err:  &session.AbortError{Nation: "a", Outcome: nationstates.OutcomeRateLimited, Status: 429},
			want: "the rate limit was exceeded and you've been locked out. Aborting run",
		},
		{
			name: "server error",
			err:  &session.AbortError{Nation: "a", Outcome: nationstates.OutcomeServerError, Status: 502},
			want: "an internal server error occurred (status 502). Aborting run",
		},
		{
			name: "unknown status",
			err:  &session.AbortError{Nation: "a", Outcome: nationstates.OutcomeUnknown, Status: 418},
			want: "an unknown error occurred (status 418). Aborting run",
		},
		{
			name: "transport failure",
			err:  &session.AbortError{Nation: "a", Outcome: nationstates.OutcomeUnknown, Err: errors.New("dial tcp: refused")},
			want: "something went wrong while logging into a: dial tcp: refused. Aborting run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, describeRunError(tt.err), tt.want)
		})
	}
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Testlandia, The Grand Duchy", displayNames([]string{"testlandia", "the_grand_duchy"}))
	assert.Equal(t, "nation", plural(1, "nation", "nations"))
	assert.Equal(t, "nations", plural(0, "nation", "nations"))
}
