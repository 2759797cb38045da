package main

import (
	"os"

	"ppif-diagnostic/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
