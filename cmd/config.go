package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show where calm keeps its files and the pacing, notification, log
and theme settings in effect. Environment overrides (CALM_HOME,
CALM_LOG_LEVEL, CALM_NO_NOTIFY) are already applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		cfg := app.config

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"config_file": configPath,
				"database":    config.GetDBPath(cfg),
				"log_file":    config.GetLogPath(cfg),
				"config":      cfg,
			})
		}

		out := cmd.OutOrStdout()
		p := cfg.ToPacing()
		notifStatus := "off"
		if cfg.Notifications.Enabled {
			notifStatus = "on"
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Config file:  %s\n", configPath)
		fmt.Fprintf(out, "  Database:     %s\n", config.GetDBPath(cfg))
		fmt.Fprintf(out, "  Log file:     %s (level %s)\n", config.GetLogPath(cfg), cfg.Log.Level)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Pacing:")
		fmt.Fprintf(out, "    Get ready:          %s\n", p.Prepare)
		fmt.Fprintf(out, "    Closing pause:      %s\n", p.Closing)
		fmt.Fprintf(out, "    Breath phase:       %s\n", p.BreathPhase)
		fmt.Fprintf(out, "    Reflection pause:   %s\n", p.ReflectionPause)
		fmt.Fprintf(out, "    Listing lead-in:    %d\n", p.ListingLeadIn)
		fmt.Fprintf(out, "    Countdown unit:     %s\n", p.CountdownUnit)
		fmt.Fprintf(out, "    Spinner tick:       %s\n", p.SpinnerTick)
		fmt.Fprintf(out, "    Key poll interval:  %s\n", p.PollInterval)
		fmt.Fprintf(out, "    Items shown:        %d\n", p.MaxListed)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Notifications:        %s\n", notifStatus)
		fmt.Fprintln(out)
		fmt.Fprintln(out, `  Change a value with "calm config set <key> <value>".`)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration value",
	Long: `Change one configuration value, e.g.

  calm config set pacing.breath_phase 5s
  calm config set notifications.enabled false

Keys:
  ` + strings.Join(config.Keys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetValue(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", strings.ToLower(args[0]), args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
