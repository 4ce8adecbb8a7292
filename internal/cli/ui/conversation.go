package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/shivswrj/chat-apiserver/internal/cli/types"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	idStyle    = lipgloss.NewStyle().Faint(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// RenderConversationList renders the conversation list view.
func RenderConversationList(conversations []types.ConversationSummary) string {
	if len(conversations) == 0 {
		return metaStyle.Render("No conversations yet. Start one with 'chatctl chat'.")
	}

	var b strings.Builder
	for i, conv := range conversations {
		b.WriteString(fmt.Sprintf("%s %s\n",
			titleStyle.Render(conv.Title),
			idStyle.Render(conv.ID),
		))
		b.WriteString(metaStyle.Render(fmt.Sprintf("  %d messages · updated %s",
			conv.MessageCount,
			conv.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)))
		b.WriteString("\n")

		if conv.LastMessage != nil {
			role := "?"
			if conv.LastMessageRole != nil {
				role = *conv.LastMessageRole
			}
			b.WriteString(fmt.Sprintf("  %s %s\n",
				idStyle.Render(role+":"),
				*conv.LastMessage,
			))
		}

		if i < len(conversations)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderMessageHistory renders a conversation's full thread.
func RenderMessageHistory(resp *types.MessageListResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n\n",
		titleStyle.Render(resp.ConversationTitle),
		idStyle.Render(resp.ConversationID),
	))

	for _, msg := range resp.Messages {
		label := "bot ›"
		style := Styles.AssistantText
		if msg.Role == "user" {
			label = "you ›"
			style = Styles.UserLabel
		}
		b.WriteString(fmt.Sprintf("%s %s\n", style.Render(label), msg.Content))
		b.WriteString(metaStyle.Render("  " + msg.Timestamp.Local().Format(time.RFC3339)))
		b.WriteString("\n")
	}

	b.WriteString(metaStyle.Render(fmt.Sprintf("\n%d messages", resp.TotalMessages)))
	return b.String()
}
