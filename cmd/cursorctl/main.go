package main

import (
	"fmt"
	"os"

	"github.com/kto/cursorctl/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Workflow errors are already rendered by the notifier.
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
