package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/boxes-labs/boxes/internal/branding"
	"github.com/boxes-labs/boxes/internal/config"
	"github.com/boxes-labs/boxes/internal/logging"
	"github.com/boxes-labs/boxes/internal/registry"
)

var (
	buildVersion = registry.DevVersion
	buildCommit  string
	buildDate    string
)

var (
	logLevel string
	logger   = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers generator modules under the configured roots, keeps the
generator types they export and catalogs them in display groups.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		level := logLevel
		if level == "" {
			level = config.Get(config.KeyLogLevel)
		}
		logger = logging.New(cmd.ErrOrStderr(), level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		return err
	}
	return nil
}
