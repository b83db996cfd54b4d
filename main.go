package main

import (
	"os"

	"github.com/harrisonrobin/takt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
