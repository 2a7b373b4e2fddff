// Package main provides the CLI entry point for dateprefix.
package main

import (
	"fmt"
	"os"

	"dateprefix/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
