// Package main is the entry point for the quire command.
package main

import (
	"os"

	"github.com/JackWReid/quire/cmd"
)

// Version is injected via ldflags at build time.
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
