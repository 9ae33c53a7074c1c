package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/usagetui/internal/version"
)

func main() {
	if os.Getenv("USAGETUI_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	root := cobra.Command{
		Use:     "usagetui",
		Short:   "Usage metrics for Claude, OpenAI, OpenRouter, Copilot, and Codex.",
		Version: version.String(),
	}

	root.AddCommand(
		newShowCommand(),
		newDoctorCommand(),
		newLoginCommand(),
		newSetupCommand(),
		newEnvCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
