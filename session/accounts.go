package session

import (
	"context"

	"github.com/s0up4200/nsping/nationstates"
)

// Add logs nation in with its password and saves the autologin token the API
// hands back. Rejected passwords, unknown nations and too-recent logins are
// returned as *AccountError; anything that should stop further additions is
// returned as *AbortError.
func (r *Runner) Add(ctx context.Context, nation, password string) (*nationstates.Result, error) {
	id, err := nationstates.NormalizeNation(nation)
	if err != nil {
		return nil, err
	}

	res, err := r.pinger.Login(ctx, id, nationstates.WithPassword(password))
	if err != nil {
		return nil, &AbortError{Nation: id, Outcome: nationstates.OutcomeUnknown, Err: err}
	}

	switch {
	case res.Outcome == nationstates.OutcomeSuccess:
		if saved, token, ok := res.Update(); ok {
			if err := r.store.Set(saved, token); err != nil {
				return res, &AccountError{Nation: id, Outcome: res.Outcome, Err: err}
			}
			r.logger.Info().Str("nation", saved).Msg("Saved autologin token")
		} else {
			r.logger.Warn().Str("nation", id).Msg("Login succeeded but no autologin token was returned")
		}
		if r.reporter != nil {
			r.reporter(res)
		}
		return res, nil
	case res.AbortsBatch():
		return res, abortFromResult(id, res)
	default:
		return res, &AccountError{Nation: id, Outcome: res.Outcome}
	}
}

// Remove deletes the given nations from the store and returns the ids that
// were actually removed. Names are normalized first; invalid names are skipped.
func (r *Runner) Remove(nations ...string) []string {
	var removed []string
	for _, name := range nations {
		id, err := nationstates.NormalizeNation(name)
		if err != nil {
			r.logger.Warn().Str("nation", name).Msg("Invalid nation name")
			continue
		}
		if r.store.Delete(id) {
			removed = append(removed, id)
		}
	}
	return removed
}

// Nations lists the saved nations.
func (r *Runner) Nations() []string {
	return r.store.Nations()
}
