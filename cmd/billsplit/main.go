package main

import (
	"os"

	"github.com/mmynk/fairsplit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
