package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/usagetui/internal/config"
	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
)

// setupPrompts lists the keys the wizard asks for, in display order.
// Claude and Codex use their own CLI credentials, so they get printed
// instructions instead of a prompt.
var setupPrompts = []struct {
	id    core.ProviderIdentity
	title string
	hint  string
}{
	{core.ProviderOpenRouter, "OpenRouter", "Get your API key from: https://openrouter.ai/keys"},
	{core.ProviderOpenAI, "OpenAI", "Requires organization admin API key."},
	{core.ProviderCopilot, "GitHub Copilot", "Optional: provide a GitHub token, or run 'usagetui login -p copilot' instead."},
}

func newSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup wizard for API keys",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprintln(os.Stdout, "\nusagetui setup")
			fmt.Fprintln(os.Stdout, strings.Repeat("=", 40))
			fmt.Fprintf(os.Stdout, "\nKeys will be saved to: %s\n", config.EnvFilePath())
			fmt.Fprintln(os.Stdout, "Press Enter to skip any key.")

			reader := bufio.NewReader(os.Stdin)
			updates := map[string]string{}

			for _, prompt := range setupPrompts {
				envVar := credentials.EnvVars[prompt.id]
				fmt.Fprintf(os.Stdout, "\n%s\n", titleStyle.Render(prompt.title))
				fmt.Fprintf(os.Stdout, "  %s\n", prompt.hint)
				fmt.Fprintf(os.Stdout, "  %s: ", envVar)

				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					break
				}
				if value := strings.TrimSpace(line); value != "" {
					updates[envVar] = value
					fmt.Fprintln(os.Stdout, "  -> Set")
				} else {
					fmt.Fprintln(os.Stdout, "  -> Skipped")
				}
			}

			fmt.Fprintf(os.Stdout, "\n%s\n", titleStyle.Render("Claude Code"))
			fmt.Fprintln(os.Stdout, "  Uses Claude CLI credentials automatically (claude setup-token).")
			fmt.Fprintf(os.Stdout, "\n%s\n", titleStyle.Render("OpenAI Codex"))
			fmt.Fprintln(os.Stdout, "  Uses Codex CLI credentials automatically (~/.codex/auth.json).")

			fmt.Fprintln(os.Stdout, "\n"+strings.Repeat("-", 40))
			if len(updates) == 0 {
				fmt.Fprintln(os.Stdout, "No keys provided. Nothing saved.")
				return nil
			}

			if err := credentials.WriteEnvFile(updates); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, okStyle.Render("Configuration saved!"))
			fmt.Fprintf(os.Stdout, "File: %s\n", config.EnvFilePath())
			return nil
		},
	}
}
