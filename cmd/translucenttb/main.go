// Package main is the entry point for TranslucentTB.
package main

import (
	"os"

	"github.com/AbhinandAK350/TranslucentTB/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
