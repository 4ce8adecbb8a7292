package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/cli/config"
	"github.com/shivswrj/chat-apiserver/internal/cli/ui"
)

// configureCmd is the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "set the default server and user identifier",
	Long: `Interactively set the API server address and the user identifier sent
with chat requests. The values are stored in ~/.chatctl/config.json and
used by every command unless overridden with --server or --user.`,
	Example: `  # Configure interactively
  $ chatctl configure`,
	RunE: runConfigure,
}

func init() {
	configureCmd.SilenceUsage = true
}

func runConfigure(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	questions := []*survey.Question{
		{
			Name: "server",
			Prompt: &survey.Input{
				Message: "API server address:",
				Default: cfg.Server,
			},
			Validate: survey.Required,
		},
		{
			Name: "user",
			Prompt: &survey.Input{
				Message: "User identifier (empty for server default):",
				Default: cfg.UserIdentifier,
			},
		},
	}

	answers := struct {
		Server string
		User   string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("configuration prompt failed: %w", err)
	}

	cfg.Server = answers.Server
	cfg.UserIdentifier = answers.User
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	path, _ := config.GetConfigPath()
	ui.PrintSuccess("Configuration saved to %s", path)
	return nil
}
