// Package main is the entry point for the tablink CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/tablink/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
