// Attendance turns a meeting attendance log into a presence report from the
// command line, using the same pipeline as the web server.
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/attendance/internal/config"
	"github.com/JonMunkholm/attendance/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	// A missing .env is normal for the CLI.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "attendance",
		Short: "Presence reports from meeting attendance logs",
		Long: `Attendance reads a tab-separated meeting attendance log (Full Name,
User Action, Timestamp), totals the time each participant spent in the
meeting and marks them Present or Absent against a threshold.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			logging.Setup(cmd.ErrOrStderr(), level, cfg.Logging.Format)
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate(fmt.Sprintf("attendance version %s\n", version))

	root.AddCommand(newReportCmd())
	return root
}
