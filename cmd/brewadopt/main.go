package main

import (
	"os"

	"github.com/arthur-debert/brewadopt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
