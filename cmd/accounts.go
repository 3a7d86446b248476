package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nsping/nationstates"
	"github.com/s0up4200/nsping/session"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update nations",
	Long: `Prompt for nations and their passwords, log in once and save the autologin
token NationStates returns. Passwords are never written to disk. Enter an empty
nation name to finish.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return addNations(cmd.Context())
	},
}

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove [nation...]",
	Short: "Remove nations from the list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeNations(cmd.Context(), args)
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved nations without logging into any of them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listNations(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
}

func addNations(ctx context.Context) error {
	runner, err := newRunner()
	if err != nil {
		return err
	}

	var added int
	var abortErr error
	for {
		nation, err := promptNation(ctx)
		if err != nil {
			abortErr = err
			break
		}
		if nation == "" {
			break
		}

		password, err := promptPassword(ctx)
		if err != nil {
			abortErr = err
			break
		}

		term.Println("Fetching nation token from NS, please wait . . .")
		_, err = runner.Add(ctx, nation, password)

		var accountErr *session.AccountError
		switch {
		case err == nil:
			added++
		case errors.As(err, &accountErr):
			reportAccountError(accountErr)
		default:
			abortErr = err
		}
		if abortErr != nil {
			break
		}
	}

	if err := saveStore(); err != nil {
		return err
	}
	if abortErr != nil {
		return describeRunError(abortErr)
	}

	if added == 0 {
		term.Println("No tokens to save.")
		return nil
	}
	term.Printf("Saved %d %s.\n", added, plural(added, "token", "tokens"))
	return nil
}

func reportAccountError(err *session.AccountError) {
	switch err.Outcome {
	case nationstates.OutcomeBadCredential:
		logger.Error().Str("nation", err.Nation).Msg("Password is incorrect. Please try again")
	case nationstates.OutcomeNotFound:
		logger.Error().Str("nation", err.Nation).Msg("Nation does not exist. Please revive it or check your spelling")
	case nationstates.OutcomeTooRecent:
		logger.Info().Str("nation", err.Nation).Msg("Logged into too recently. Please wait a few moments before trying again")
	default:
		logger.Error().Err(err).Msg("Could not add nation")
	}
}

// promptNation asks for a nation until a valid or empty name is given
func promptNation(ctx context.Context) (string, error) {
	for {
		name, err := term.Prompt(ctx, "Nation: ")
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil || name == "" {
			return "", err
		}

		id, err := nationstates.NormalizeNation(name)
		if err != nil {
			term.Println("Invalid nation name.")
			continue
		}
		return id, nil
	}
}

func promptPassword(ctx context.Context) (string, error) {
	for {
		password, err := term.Password(ctx, "Password: ")
		if err != nil {
			return "", err
		}
		if password != "" {
			return password, nil
		}
		term.Println("No password entered. Please provide a password.")
	}
}

func removeNations(ctx context.Context, nations []string) error {
	if store.Len() == 0 {
		return errors.New("no nations are saved")
	}

	if len(nations) == 0 {
		for {
			nation, err := promptNation(ctx)
			if err != nil {
				return err
			}
			if nation == "" {
				break
			}
			nations = append(nations, nation)
		}
	}

	if len(nations) == 0 {
		term.Println("No nations to remove.")
		return nil
	}

	runner := session.NewRunner(nil, store, logger)
	removed := runner.Remove(nations...)
	if err := saveStore(); err != nil {
		return err
	}

	term.Printf("Removed %d %s.\n", len(removed), plural(len(removed), "nation", "nations"))
	return nil
}

func listNations(ctx context.Context) error {
	nations := store.Nations()
	if len(nations) == 0 {
		term.Println("No nations have been saved.")
		return nil
	}

	lines := make([]string, len(nations))
	for i, id := range nations {
		lines[i] = nationstates.DisplayName(id)
	}
	term.Page(ctx, lines)
	return nil
}
