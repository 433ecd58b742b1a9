package main

import (
	"os"

	"github.com/monorkin/gplus-log-compiler/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
