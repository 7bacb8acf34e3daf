// Package main is the entry point for the textmend CLI.
package main

import (
	"os"

	"github.com/textmend/textmend/cmd/textmend/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
