package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/providers"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Show required environment variables",
		Run: func(_ *cobra.Command, _ []string) {
			resolver := credentials.NewResolver()

			fmt.Fprintln(os.Stdout, "Required environment variables:")
			for _, p := range providers.All(resolver) {
				info := p.Describe()
				status := "[NOT SET]"
				if p.IsConfigured() {
					status = "[OK]"
				}
				fmt.Fprintf(os.Stdout, "\n  %s  %s\n", info.EnvVar, status)
				fmt.Fprintf(os.Stdout, "    %s\n", info.Description)
				if info.Note != "" {
					fmt.Fprintf(os.Stdout, "    Note: %s\n", info.Note)
				}
			}
		},
	}
}
