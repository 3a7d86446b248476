// Package session drives logins for the saved nations and applies the
// results to the token store.
package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/s0up4200/nsping/nationstates"
	"github.com/s0up4200/nsping/tokens"
)

// Pinger logs a single nation in.
type Pinger interface {
	Login(ctx context.Context, nation string, creds nationstates.Credentials) (*nationstates.Result, error)
}

// NoticeReporter receives the filtered notices of every successful login.
type NoticeReporter func(res *nationstates.Result)

// Summary describes what a batch did.
type Summary struct {
	Pinged  []string
	Updated []string
	Removed []string
	Skipped []string
}

// Runner processes nations one at a time against a token store.
type Runner struct {
	pinger   Pinger
	store    *tokens.Store
	logger   zerolog.Logger
	reporter NoticeReporter
}

// NewRunner creates a new runner
func NewRunner(pinger Pinger, store *tokens.Store, logger zerolog.Logger) *Runner {
	return &Runner{
		pinger: pinger,
		store:  store,
		logger: logger,
	}
}

// SetNoticeReporter sets the callback invoked after each successful login.
func (r *Runner) SetNoticeReporter(reporter NoticeReporter) {
	r.reporter = reporter
}

// Run logs into every saved nation with its stored token.
//
// Nations whose token is rejected or that no longer exist are removed from
// the store. A rate limit, server error or unexpected failure stops the batch
// and is returned as an *AbortError; changes made before that point stay in
// the store.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	nations := r.store.Nations()
	if len(nations) == 0 {
		return nil, ErrNoNations
	}

	summary := &Summary{}
	done := make(map[string]bool, len(nations))
	for _, nation := range nations {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if done[nation] {
			r.logger.Debug().Str("nation", nation).Msg("Already logged in during this run")
			continue
		}
		done[nation] = true

		token, _ := r.store.Get(nation)
		res, err := r.pinger.Login(ctx, nation, nationstates.WithAutologin(token))
		if err != nil {
			r.logger.Error().Err(err).Str("nation", nation).Msg("Login failed, aborting run")
			return summary, &AbortError{Nation: nation, Outcome: nationstates.OutcomeUnknown, Err: err}
		}
		summary.Pinged = append(summary.Pinged, nation)

		switch {
		case res.Outcome == nationstates.OutcomeSuccess:
			done[res.Nation] = true
			r.applySuccess(nation, res, summary)
		case res.Outcome == nationstates.OutcomeBadCredential:
			r.logger.Error().Str("nation", nation).Msg("Autologin was rejected, removing nation. Add it again with its password")
			r.remove(nation, summary)
		case res.Outcome == nationstates.OutcomeNotFound:
			r.logger.Error().Str("nation", nation).Msg("Nation does not exist, removing it. Revive it and add it again")
			r.remove(nation, summary)
		case res.Outcome == nationstates.OutcomeTooRecent:
			r.logger.Info().Str("nation", nation).Msg("Logged into too recently, skipped")
			summary.Skipped = append(summary.Skipped, nation)
		default:
			r.logger.Error().
				Str("nation", nation).
				Int("status", res.Status).
				Str("outcome", res.Outcome.String()).
				Dur("retry_after", res.RetryAfter).
				Msg("Aborting run")
			return summary, abortFromResult(nation, res)
		}
	}

	return summary, nil
}

func (r *Runner) applySuccess(nation string, res *nationstates.Result, summary *Summary) {
	if id, token, ok := res.Update(); ok {
		if err := r.store.Set(id, token); err != nil {
			r.logger.Error().Err(err).Str("nation", id).Msg("Could not save autologin token")
		} else {
			if id != nation {
				// The API answered for a differently spelled id; keep one entry.
				r.store.Delete(nation)
			}
			summary.Updated = append(summary.Updated, id)
		}
	}
	r.logger.Info().Str("nation", res.Nation).Int("notices", res.Notices.Count()).Msg("Logged in")
	if r.reporter != nil {
		r.reporter(res)
	}
}

func (r *Runner) remove(nation string, summary *Summary) {
	if r.store.Delete(nation) {
		summary.Removed = append(summary.Removed, nation)
	}
}

func abortFromResult(nation string, res *nationstates.Result) *AbortError {
	return &AbortError{
		Nation:     nation,
		Outcome:    res.Outcome,
		Status:     res.Status,
		RetryAfter: res.RetryAfter,
	}
}
