package main

import (
	"os"

	"github.com/jask/placefilter/cmd/placefilter/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
