// Package main provides the entry point for the vibehooks CLI.
package main

import (
	"os"

	"github.com/dg-vibecoding/vibehooks/cmd/vibehooks/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
