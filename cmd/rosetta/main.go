package main

import (
	"os"

	"github.com/go-drift/rosetta/cmd/rosetta/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
