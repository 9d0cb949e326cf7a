package main

import (
	"os"

	"github.com/spigell/hiring-dna/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
