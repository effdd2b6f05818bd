// Package main is the entry point for the minitext CLI.
package main

import (
	"github.com/sungur/minitext/internal/cli"
	_ "github.com/sungur/minitext/internal/ui" // registers the terminal front end
)

func main() {
	cli.Execute()
}
