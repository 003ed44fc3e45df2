package main

import (
	"os"

	"github.com/electrak/fleetpulse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
