// Package main is the entry point for the p CLI tool.
package main

import (
	"context"
	"os"

	"github.com/coyenn/p/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
