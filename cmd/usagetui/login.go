package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/providers"
)

func newLoginCommand() *cobra.Command {
	var providerFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a provider",
		Long: `Authenticate with a provider.

For Claude: extracts the token from an existing Claude CLI installation.
For Copilot: performs GitHub device flow authentication.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch providerFlag {
			case "claude":
				return loginClaude()
			case "copilot":
				return loginCopilot(cmd.Context())
			}
			return fmt.Errorf("login not supported for provider %q (supported: claude, copilot)", providerFlag)
		},
	}

	cmd.Flags().StringVarP(&providerFlag, "provider", "p", "claude",
		"Provider to login to (claude, copilot)")
	return cmd
}

func loginClaude() error {
	cred, ok := credentials.LoadClaudeCLIToken(credentials.ClaudeCLICredentialPath())
	if !ok {
		fmt.Fprintln(os.Stdout, errStyle.Render("Claude CLI credentials not found or expired"))
		fmt.Fprintln(os.Stdout, "\nTo set up Claude CLI:")
		fmt.Fprintln(os.Stdout, "  1. Install: npm install -g @anthropics/claude")
		fmt.Fprintln(os.Stdout, "  2. Authenticate: claude setup-token")
		fmt.Fprintln(os.Stdout, "  3. Then run 'usagetui login' again")
		return fmt.Errorf("claude login failed")
	}

	fmt.Fprintln(os.Stdout, okStyle.Render("Token extracted successfully!"))
	fmt.Fprintf(os.Stdout, "  Token:      %s\n", cred.Preview())
	if cred.ExpiresAt != nil {
		fmt.Fprintf(os.Stdout, "  Expires in: %.0f hours\n", time.Until(*cred.ExpiresAt).Hours())
	}
	fmt.Fprintln(os.Stdout, "\nToken auto-loaded from", credentials.ClaudeCLICredentialPath())
	fmt.Fprintln(os.Stdout, "You can now run: usagetui show -p claude")
	return nil
}

func loginCopilot(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := providers.Lookup(credentials.NewResolver(), core.ProviderCopilot)
	if err != nil {
		return err
	}
	lp, ok := p.(core.LoginProvider)
	if !ok {
		return fmt.Errorf("copilot provider does not support login")
	}

	fmt.Fprintln(os.Stdout, "GitHub Copilot Login")
	fmt.Fprintln(os.Stdout, "========================================")

	if _, err := lp.Login(ctx, os.Stdout); err != nil {
		fmt.Fprintln(os.Stdout, errStyle.Render("Login failed: "+err.Error()))
		return err
	}

	fmt.Fprintln(os.Stdout, okStyle.Render("Login successful!"))
	fmt.Fprintln(os.Stdout, "\nYou can now run: usagetui show -p copilot")
	return nil
}
