package main

import (
	"os"

	"github.com/izvod-dev/izvod/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
