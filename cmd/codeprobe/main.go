package main

import (
	"os"

	"github.com/dshills/codeprobe/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
