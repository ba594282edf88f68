// Package main is the entry point for the eventbridge command.
package main

import (
	"os"

	"github.com/teratic/eventbridge/internal/cli"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
