package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/cli/ui"
)

// listCmd is the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list your conversations",
	Long: `List your conversations, most recently active first.

Each entry shows the conversation title, id, message count, last
activity, and a preview of the most recent message.`,
	Example: `  # List conversations for the configured user
  $ chatctl list

  # List conversations for another user identifier
  $ chatctl list -u alice`,
	RunE: runList,
}

func init() {
	listCmd.SilenceUsage = true
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}

	apiClient, cfg, err := loadClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := apiClient.ListConversations(ctx, cfg.UserIdentifier)
	if err != nil {
		ui.PrintError("failed to list conversations: %v", err)
		return fmt.Errorf("list operation failed")
	}

	fmt.Println()
	fmt.Println(ui.RenderConversationList(resp.Conversations))
	fmt.Println()
	ui.PrintInfo("%d conversation(s) for '%s'", resp.TotalConversations, resp.UserIdentifier)

	return nil
}
