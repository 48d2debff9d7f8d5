package main

import (
	"os"

	"github.com/m3rciful/swapstream/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
