package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/cli/client"
	"github.com/shivswrj/chat-apiserver/internal/cli/config"
	"github.com/shivswrj/chat-apiserver/internal/cli/ui"
)

const version = "0.1.0"

var (
	flagServer string
	flagUser   string
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "chatctl",
	Short:   "Chat API Server CLI",
	Version: version,
	Long: `A command-line client for the chat API server. Start interactive chat
sessions, browse and replay conversation history, and manage stored
conversations.`,
	Example: `  # Start an interactive chat session
  $ chatctl chat

  # Continue an existing conversation
  $ chatctl chat --conversation 3f2c...

  # List your conversations
  $ chatctl list

  # Show a conversation's full history
  $ chatctl history 3f2c...

  # Check server health
  $ chatctl health`,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "API server address (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "user identifier (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configureCmd)

	// Set custom template with bold uppercase headers
	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

// loadClient loads CLI config, applies flag overrides, and builds the
// API client.
func loadClient() (*client.APIClient, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return nil, nil, fmt.Errorf("config load failed")
	}

	if flagServer != "" {
		cfg.Server = flagServer
	}
	if flagUser != "" {
		cfg.UserIdentifier = flagUser
	}

	apiClient, err := client.NewAPIClient(cfg.Server)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, nil, fmt.Errorf("client creation failed")
	}

	return apiClient, cfg, nil
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("chatctl version %s\n", version)
}
