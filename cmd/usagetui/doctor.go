package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/providers"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check provider configuration and connectivity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			resolver := credentials.NewResolver()

			fmt.Fprintln(os.Stdout, "usagetui doctor")
			fmt.Fprintln(os.Stdout, strings.Repeat("=", 40))

			allOK := true
			for _, p := range providers.All(resolver) {
				info := p.Describe()
				fmt.Fprintf(os.Stdout, "\n%s\n", titleStyle.Render(info.Name))

				cred, ok := resolver.Resolve(p.ID())
				if !ok {
					fmt.Fprintf(os.Stdout, "  Config:     %s\n", errStyle.Render("MISSING"))
					fmt.Fprintf(os.Stdout, "              Set: %s\n", info.EnvVar)
					allOK = false
					continue
				}
				fmt.Fprintf(os.Stdout, "  Config:     %s (%s, via %s)\n",
					okStyle.Render("OK"), cred.Preview(), cred.Source)

				fmt.Fprint(os.Stdout, "  Testing:    ")
				result := p.Fetch(ctx, core.WindowHour5)
				if result.IsError() {
					fmt.Fprintln(os.Stdout, errStyle.Render("FAILED - "+result.Err.Message))
					allOK = false
				} else {
					fmt.Fprintln(os.Stdout, okStyle.Render("OK"))
				}

				if info.Note != "" {
					fmt.Fprintf(os.Stdout, "  Note:       %s\n", info.Note)
				}
			}

			fmt.Fprintln(os.Stdout, "\n"+strings.Repeat("-", 40))
			if allOK {
				fmt.Fprintln(os.Stdout, okStyle.Render("All providers healthy!"))
			} else {
				fmt.Fprintln(os.Stdout, warnStyle.Render("Some providers need attention."))
			}
			return nil
		},
	}
}
