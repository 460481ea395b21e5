package main

import (
	"os"

	"github.com/bankview-dev/bankview/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
