package main

import (
	"os"

	"github.com/indigo-web/rawfetch/internal/cli"
)

func main() {
	os.Exit(cli.Execute(newRootCmd()))
}
