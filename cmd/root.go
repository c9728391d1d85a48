package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the huddle application
var rootCmd = &cobra.Command{
	Use:   "huddle",
	Short: "Team calendar coordination through relay agents",
	Long: `huddle coordinates team calendars through each member's relay agent:
it requests availability, collects busy-time reports, computes common
free slots, and broadcasts meeting bookings.

It can run as:
  - The HTTP API server (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "huddle version %s\n" .Version}}`)

	// If no subcommand is provided, serve the HTTP API by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMCPCmd())
}
