// Package main is the entry point for the helios command.
package main

import (
	"os"

	"github.com/leapstack-labs/helios/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
