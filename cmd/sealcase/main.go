// Package main is the entry point for the sealcase CLI. It delegates to
// cobra commands defined in root.go and build.go.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
