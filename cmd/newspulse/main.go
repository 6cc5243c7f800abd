package main

import (
	"os"

	"github.com/ekurt/newspulse/cmd/newspulse/commands"
)

// main is the entry point for the newspulse CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
