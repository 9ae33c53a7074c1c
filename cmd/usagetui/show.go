package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/providers"
)

func newShowCommand() *cobra.Command {
	var (
		providerFlag string
		windowFlag   string
		outputJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show usage metrics for providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			window, err := core.ParseWindowPeriod(windowFlag)
			if err != nil {
				return err
			}

			resolver := credentials.NewResolver()
			all := providers.All(resolver)

			selected := all
			if providerFlag != "all" {
				id, err := core.ParseProviderIdentity(providerFlag)
				if err != nil {
					return err
				}
				p, err := core.RequireProvider(all, id)
				if err != nil {
					return err
				}
				selected = []core.Provider{p}
			}

			configured := lo.Filter(selected, func(p core.Provider, _ int) bool {
				return p.IsConfigured()
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			// Quota providers roll both a 5-hour and a weekly window; show
			// both when the user didn't pin one explicitly.
			dualWindow := !outputJSON && !cmd.Flags().Changed("window")

			batch := configured
			if dualWindow {
				batch = lo.Filter(configured, func(p core.Provider, _ int) bool {
					return !showsBothWindows(p.ID())
				})
			}
			results := core.FetchAll(ctx, batch, window)

			for _, p := range selected {
				if !p.IsConfigured() {
					if !outputJSON {
						fmt.Fprintf(os.Stdout, "\n%s: Not configured\n", p.ID())
						fmt.Fprintf(os.Stdout, "  Set %s environment variable\n", p.Describe().EnvVar)
					}
					continue
				}

				if dualWindow && showsBothWindows(p.ID()) {
					for _, r := range core.FetchWindows(ctx, p, []core.WindowPeriod{core.WindowHour5, core.WindowDay7}) {
						printResult(os.Stdout, r, true)
					}
					continue
				}

				r := results[p.ID()]
				if !outputJSON {
					printResult(os.Stdout, r, false)
				}
			}

			if outputJSON {
				out := make(map[string]core.ProviderResult, len(results))
				for id, r := range results {
					out[string(id)] = r
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(os.Stdout, string(data))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&providerFlag, "provider", "p", "all",
		"Provider to query (claude, openai, openrouter, copilot, codex, all)")
	cmd.Flags().StringVarP(&windowFlag, "window", "w", "7d",
		"Time window (5h, 7d, 30d)")
	cmd.Flags().BoolVar(&outputJSON, "json", false,
		"Output raw JSON instead of formatted text")

	return cmd
}

// showsBothWindows marks the providers whose quota rolls over both a
// 5-hour and a weekly window.
func showsBothWindows(id core.ProviderIdentity) bool {
	return id == core.ProviderClaude || id == core.ProviderCodex
}
