// Package main is the entry point for the airules CLI.
package main

import (
	"os"

	"github.com/thoreinstein/airules/cmd/airules/commands"
	"github.com/thoreinstein/airules/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
