package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/cli/ui"
)

// healthCmd is the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "check server and database health",
	Long:  `Probe the API server's health endpoint and show store statistics.`,
	Example: `  # Check the configured server
  $ chatctl health

  # Check a specific server
  $ chatctl health -s http://localhost:8080`,
	RunE: runHealth,
}

func init() {
	healthCmd.SilenceUsage = true
}

func runHealth(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}

	apiClient, cfg, err := loadClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := apiClient.Health(ctx)
	if err != nil {
		ui.PrintError("server unhealthy: %v", err)
		return fmt.Errorf("health check failed")
	}

	ui.PrintSuccess("Server %s is %s (version %s)", cfg.Server, resp.Status, resp.Version)
	ui.PrintInfo("Database connected: %v", resp.DatabaseConnected)
	ui.PrintInfo("Users: %d · Conversations: %d · Messages: %d",
		resp.TotalUsers, resp.TotalConversations, resp.TotalMessages)

	return nil
}
