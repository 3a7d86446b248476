package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/nsping/config"
	"github.com/s0up4200/nsping/console"
	"github.com/s0up4200/nsping/nationstates"
	"github.com/s0up4200/nsping/notices"
	"github.com/s0up4200/nsping/session"
	"github.com/s0up4200/nsping/tokens"
)

var (
	cfgFile    string
	tokensFile string
	cfg        *config.Config
	logger     zerolog.Logger
	store      *tokens.Store
	term       *console.Console

	// tracker outlives single commands so menu runs share rate-limit state
	tracker *nationstates.RateTracker
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "nsping",
	Short: "Keep NationStates autologin tokens fresh",
	Long: `nsping logs into every saved NationStates nation through the API so the
nations do not cease to exist from inactivity. Only autologin tokens are saved,
never passwords.

Run without a subcommand in a terminal to get the interactive menu.`,
	PersistentPreRunE: initializeApp,
	RunE:              runMenu,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Only the first interrupt is caught; the next one kills the process.
	context.AfterFunc(ctx, stop)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./settings.json)")
	rootCmd.PersistentFlags().StringVar(&tokensFile, "tokens", "", "token file (default is ./.tokens)")
}

// initializeApp loads the configuration and the token store
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("tokens") {
		cfg.TokensFile = tokensFile
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)
	term = console.New(os.Stdin, os.Stdout)
	tracker = nationstates.NewRateTracker(cfg.RateLimit.Window, cfg.RateLimit.Margin, cfg.RateLimit.Pause)

	loadStore()
	return migrateLegacy()
}

// loadStore reads the token file, falling back to an empty store
func loadStore() {
	var err error
	store, err = tokens.Load(cfg.TokensFile)

	var corrupt *tokens.CorruptError
	switch {
	case err == nil:
		logger.Debug().Int("nations", store.Len()).Str("path", cfg.TokensFile).Msg("Loaded tokens")
	case errors.Is(err, tokens.ErrNotExist):
		logger.Debug().Str("path", cfg.TokensFile).Msg("No token file yet")
	case errors.As(err, &corrupt):
		logger.Warn().Err(err).Msg("Token file is corrupt, starting with an empty nation list")
	default:
		logger.Warn().Err(err).Msg("Could not read token file, starting with an empty nation list")
	}
}

// migrateLegacy imports the old JSON token file and removes it once saved
func migrateLegacy() error {
	if cfg.LegacyFile == "" {
		return nil
	}
	if _, err := os.Stat(cfg.LegacyFile); err != nil {
		return nil
	}

	imported, err := tokens.MigrateLegacy(cfg.LegacyFile, store)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not migrate legacy token file")
		return nil
	}
	if err := store.Save(cfg.TokensFile); err != nil {
		return fmt.Errorf("failed to save migrated tokens: %w", err)
	}
	if err := os.Remove(cfg.LegacyFile); err != nil {
		return fmt.Errorf("failed to remove legacy token file: %w", err)
	}

	logger.Info().Int("nations", imported).Str("from", cfg.LegacyFile).Msg("Migrated legacy token file")
	return nil
}

// saveStore writes the token file if anything changed
func saveStore() error {
	saved, err := store.SaveIfChanged(cfg.TokensFile)
	if err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	if saved {
		logger.Debug().Str("path", cfg.TokensFile).Msg("Saved tokens")
	}
	return nil
}

// newRunner builds an API client for the configured agent
func newRunner() (*session.Runner, error) {
	agent, err := cfg.ResolveAgent(store.Agent())
	if err != nil {
		return nil, errAgentNotSet
	}

	filter, err := notices.Compile(cfg.Notices.Hide)
	if err != nil {
		return nil, err
	}

	opts := []nationstates.Option{
		nationstates.WithBaseURL(cfg.API.URL),
		nationstates.WithTimeout(cfg.API.Timeout),
		nationstates.WithRateTracker(tracker),
		nationstates.WithNoticeFilter(filter),
	}
	if cfg.RateLimit.Pacing {
		opts = append(opts, nationstates.WithPacing())
	}

	client, err := nationstates.NewClient(agent, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	runner := session.NewRunner(client, store, logger)
	if cfg.Notices.Show {
		runner.SetNoticeReporter(printNotices)
	}
	return runner, nil
}

var errAgentNotSet = errors.New("user agent not set, use 'nsping agent set' first")

func printNotices(res *nationstates.Result) {
	if res.Notices.Count() == 0 {
		term.Printf("%s: no new notices\n", nationstates.DisplayName(res.Nation))
		return
	}

	out, err := notices.Format(res.Notices)
	if err != nil {
		logger.Warn().Err(err).Str("nation", res.Nation).Msg("Could not format notices")
		return
	}
	term.Printf("\n%s\n\n", out)
}
