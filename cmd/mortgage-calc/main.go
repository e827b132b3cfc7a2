package main

import (
	"os"

	"github.com/iwvelando/mortgage-calc/cmd/mortgage-calc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
