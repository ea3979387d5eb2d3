// Package main is the entry point for the travel planner API.
// Its sole responsibility is handing control to the command tree.
package main

import (
	"fmt"
	"os"

	"github.com/yeolmok/travel-planner/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
