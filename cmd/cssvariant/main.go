// Package main provides the cssvariant CLI for compiling variant recipes
// and consolidating CSS injection calls in bundled output.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Issues were already reported; only the exit code is left.
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
