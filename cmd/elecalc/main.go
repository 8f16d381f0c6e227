package main

import (
	"os"

	"github.com/ohowland/elecalc/cmd/elecalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
