package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/cli/ui"
)

var deleteForce bool

// deleteCmd is the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <conversation-id>",
	Short: "delete a conversation and all of its messages",
	Long: `Delete a conversation. All of its messages are removed with it; the
deletion cannot be undone.

By default, you will be prompted to confirm. Use --force to skip confirmation.`,
	Example: `  # Delete a conversation
  $ chatctl delete 3f2c...

  # Force delete without confirmation
  $ chatctl delete 3f2c... --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
	deleteCmd.SilenceUsage = true
}

func runDelete(cmd *cobra.Command, args []string) error {
	conversationID := args[0]

	apiClient, _, err := loadClient()
	if err != nil {
		return err
	}

	if !deleteForce {
		confirm := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Delete conversation '%s' and all of its messages?", conversationID),
		}
		if err := survey.AskOne(prompt, &confirm); err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}

		if !confirm {
			ui.PrintInfo("Deletion cancelled")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiClient.DeleteConversation(ctx, conversationID); err != nil {
		ui.PrintError("failed to delete: %v", err)
		return fmt.Errorf("deletion failed")
	}

	ui.PrintSuccess("Successfully deleted conversation '%s'", conversationID)
	return nil
}
