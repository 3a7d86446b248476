package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/nsping/nationstates"
)

// agentCmd represents the agent command
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Show the user agent sent to NationStates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showAgent()
	},
}

// agentSetCmd represents the agent set command
var agentSetCmd = &cobra.Command{
	Use:   "set [agent]",
	Short: "Set the user agent",
	Long: `Set the user agent sent with every request. Keep it descriptive, e.g. your
main nation name and a contact email. nsping appends information about itself.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAgent(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
	agentCmd.AddCommand(agentSetCmd)
}

func showAgent() error {
	agent, err := cfg.ResolveAgent(store.Agent())
	if err != nil {
		return errAgentNotSet
	}
	term.Println(nationstates.UserAgent(agent))
	if cfg.Agent != "" {
		term.Println("(set in the config file or NSPING_AGENT)")
	}
	return nil
}

func setAgent(ctx context.Context, agent string) error {
	if strings.TrimSpace(agent) == "" {
		term.Println("Set a new user agent. Be sure to keep it descriptive, e.g. nation name and contact email.")
		term.Println("The script itself will append information about itself automatically.")

		var err error
		agent, err = term.Prompt(ctx, "New agent: ")
		if err != nil {
			return err
		}
	}
	if agent == "" {
		return errors.New("no agent given")
	}

	store.SetAgent(agent)
	if err := saveStore(); err != nil {
		return err
	}

	logger.Info().Str("agent", store.Agent()).Msg("User agent set")
	if cfg.Agent != "" {
		logger.Warn().Msg("The configured agent still takes precedence over the saved one")
	}
	return nil
}
