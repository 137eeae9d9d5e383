package main

import (
	"os"

	"github.com/roketin/r-component-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
