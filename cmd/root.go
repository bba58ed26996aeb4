// Package cmd provides the CLI commands for the calm application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	plainMode  bool
	seed       uint64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "calm",
	Short: "calm - guided breathing, reflection and listing sessions",
	Long: `calm runs short guided mindfulness activities in your terminal:
breathing, reflection on a prompt, and listing good things against the clock.

Run "calm" with no arguments to pick an activity from the menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runMenu,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the prompt library database (default: ~/.calm/calm.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVar(&plainMode, "plain", false, "Use the plain numbered menu instead of the arrow-key picker")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for prompt and question selection (0 picks a random seed)")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("calm\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(breatheCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}
