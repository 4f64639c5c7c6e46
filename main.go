// Package main is the entry point for the fetch-issues CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/fetchissues/cmd"
	"github.com/danielolaszy/fetchissues/internal/logging"
)

// main executes the root command and exits non-zero if it fails.
func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
