// Package main provides the archief CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/archief/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
