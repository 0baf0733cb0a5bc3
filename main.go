package main

import (
	"fmt"
	"os"

	"github.com/docvault/docvault/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
