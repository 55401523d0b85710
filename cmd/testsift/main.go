// Package main is the entry point for the testsift CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/testsift/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
