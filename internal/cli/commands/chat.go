package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/cli/client"
	"github.com/shivswrj/chat-apiserver/internal/cli/ui"
)

var chatConversationID string

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "chat with the server, one-shot or interactive",
	Long: `Send a chat message and print the reply.

With a message argument, sends that single message and exits. Without
arguments, starts an interactive session: every line you type is sent as
a message, and the whole session stays in one conversation.

Use --conversation to continue an existing conversation instead of
starting a new one.`,
	Example: `  # One-shot message, starts a new conversation
  $ chatctl chat "how much does it cost?"

  # Interactive session
  $ chatctl chat

  # Continue an existing conversation
  $ chatctl chat --conversation 3f2c... "tell me more"`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatConversationID, "conversation", "C", "", "conversation id to continue")
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	apiClient, cfg, err := loadClient()
	if err != nil {
		return err
	}

	conversationID := chatConversationID

	// One-shot mode
	if len(args) > 0 {
		message := strings.Join(args, " ")
		return sendOne(apiClient, cfg.UserIdentifier, &conversationID, message, true)
	}

	// Interactive mode
	ui.PrintChatWelcomeBanner(cfg.Server)
	if conversationID != "" {
		ui.PrintInfo("Continuing conversation %s", conversationID)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(ui.Styles.UserLabel.Render("you › "))
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		if err := sendOne(apiClient, cfg.UserIdentifier, &conversationID, line, false); err != nil {
			ui.PrintError("%v", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if conversationID != "" {
		fmt.Println()
		ui.PrintInfo("Conversation: %s", conversationID)
		fmt.Println("Resume with 'chatctl chat --conversation " + conversationID + "'")
	}
	return nil
}

// sendOne sends a single message, prints the reply, and threads the
// conversation id back for the next turn.
func sendOne(apiClient *client.APIClient, userIdentifier string, conversationID *string, message string, echoUser bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := apiClient.Chat(ctx, userIdentifier, *conversationID, message)
	if err != nil {
		return err
	}

	if echoUser {
		ui.PrintUserMessage(resp.UserMessage.Content)
	}
	ui.PrintAssistantMessage(resp.AIResponse.Content)

	if *conversationID == "" {
		*conversationID = resp.ConversationID
	}
	return nil
}
