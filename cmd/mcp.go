package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/calm-cli/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server lists the guided activities and manages the prompt library.
Sessions themselves need a terminal and cannot be run over MCP.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Starting MCP server...")
		fmt.Fprintln(errOut, "   The server will communicate via stdio")
		fmt.Fprintln(errOut, "   Press Ctrl+C to stop")

		ctx, cancel := setupSignalHandler()
		defer cancel()

		server := mcp.NewServer(app.prompts)
		defer func() { _ = server.Stop() }()

		app.logger.Info("mcp server starting")
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
