// Package main provides the movegrade CLI tool for grading chess games
// with a UCI engine.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
