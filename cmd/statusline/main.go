package main

import (
	"fmt"
	"os"

	"github.com/danieljhkim/statusline/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	// Rendering never returns an error; only the config and tooling
	// subcommands can fail here.
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
