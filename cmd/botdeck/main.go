package main

import (
	"os"

	"github.com/rustyeddy/botdeck/cmd/botdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
