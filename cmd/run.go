package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nsping/nationstates"
	"github.com/s0up4200/nsping/session"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Log into every saved nation",
	Long: `Log into every saved nation with its autologin token and save the renewed tokens.

Nations whose token is rejected or that no longer exist are removed from the list.
The run stops as soon as the API rate limit is hit or the server misbehaves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogins(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runLogins(ctx context.Context) error {
	runner, err := newRunner()
	if err != nil {
		return err
	}

	logger.Info().Int("nations", store.Len()).Msg("Starting run")

	summary, runErr := runner.Run(ctx)

	// Whatever happened, keep the tokens renewed so far
	if err := saveStore(); err != nil {
		return err
	}

	if summary != nil {
		printSummary(summary)
	}
	if runErr != nil {
		return describeRunError(runErr)
	}

	term.Println("Run complete.")
	return nil
}

func printSummary(s *session.Summary) {
	term.Printf("\nLogged into %d %s", len(s.Pinged), plural(len(s.Pinged), "nation", "nations"))
	if len(s.Updated) > 0 {
		term.Printf(", renewed %d %s", len(s.Updated), plural(len(s.Updated), "token", "tokens"))
	}
	term.Println(".")

	if len(s.Skipped) > 0 {
		term.Printf("Skipped (logged into too recently): %s\n", displayNames(s.Skipped))
	}
	if len(s.Removed) > 0 {
		term.Printf("Removed: %s\n", displayNames(s.Removed))
	}
}

// describeRunError turns a batch abort into a message for the user
func describeRunError(err error) error {
	if errors.Is(err, session.ErrNoNations) {
		return errors.New("no nations have been saved, use 'nsping add' first")
	}
	if errors.Is(err, context.Canceled) {
		return errors.New("run interrupted")
	}

	var abort *session.AbortError
	if !errors.As(err, &abort) {
		return err
	}

	switch {
	case abort.IsRateLimited():
		if abort.RetryAfter > 0 {
			return fmt.Errorf("the rate limit was exceeded and you've been locked out for %s. Aborting run", abort.RetryAfter)
		}
		return errors.New("the rate limit was exceeded and you've been locked out. Aborting run")
	case abort.Outcome == nationstates.OutcomeServerError:
		return fmt.Errorf("an internal server error occurred (status %d). Aborting run", abort.Status)
	case abort.Err != nil:
		logger.Error().Err(abort.Err).Str("nation", abort.Nation).Msg("Unexpected failure")
		return fmt.Errorf("something went wrong while logging into %s: %w. Aborting run", abort.Nation, abort.Err)
	default:
		return fmt.Errorf("an unknown error occurred (status %d). Aborting run", abort.Status)
	}
}

func displayNames(ids []string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = nationstates.DisplayName(id)
	}
	return strings.Join(names, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
