package main

import (
	"os"

	"github.com/edstats-labs/uisdata-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
