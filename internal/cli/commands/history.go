package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/cli/ui"
)

// historyCmd is the history command
var historyCmd = &cobra.Command{
	Use:   "history <conversation-id>",
	Short: "show a conversation's full message history",
	Long: `Show every message of a conversation in chronological order,
user and assistant turns interleaved.`,
	Example: `  # Show a conversation's history
  $ chatctl history 3f2c...`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.SilenceUsage = true
}

func runHistory(cmd *cobra.Command, args []string) error {
	conversationID := args[0]

	apiClient, _, err := loadClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := apiClient.History(ctx, conversationID)
	if err != nil {
		ui.PrintError("failed to fetch history: %v", err)
		return fmt.Errorf("history operation failed")
	}

	fmt.Println()
	fmt.Println(ui.RenderMessageHistory(resp))

	return nil
}
