package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

var (
	// Color definitions for terminal output
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	boldColor    = color.New(color.Bold)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	successColor.Printf("✓ %s\n", msg)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	errorColor.Printf("✗ %s\n", msg)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	warningColor.Printf("⚠ %s\n", msg)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	infoColor.Printf("ℹ %s\n", msg)
}

// PrintBold prints a bold message
func PrintBold(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	boldColor.Println(msg)
}

// PrintChatWelcomeBanner prints the welcome banner for interactive chat
func PrintChatWelcomeBanner(server string) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Align(lipgloss.Center).
		Width(56)

	hintStyle := lipgloss.NewStyle().
		Faint(true).
		Align(lipgloss.Center).
		Width(56)

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("💬  Chat - Interactive Mode"),
		hintStyle.Render(server),
		hintStyle.Render("Type a message and press Enter. /quit to exit."),
	)

	fmt.Println(Styles.Banner.Render(content))
}

// PrintUserMessage prints the user side of a chat turn
func PrintUserMessage(content string) {
	fmt.Printf("%s %s\n", Styles.UserLabel.Render("you ›"), content)
}

// PrintAssistantMessage prints the assistant side of a chat turn
func PrintAssistantMessage(content string) {
	fmt.Printf("%s %s\n", Styles.Bold.Render("bot ›"), Styles.AssistantText.Render(content))
}
