package main

import (
	"os"

	"github.com/DbIM/qr-code/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
