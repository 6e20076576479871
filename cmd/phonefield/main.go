package main

import (
	"os"

	"phonefield/cmd/phonefield/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
