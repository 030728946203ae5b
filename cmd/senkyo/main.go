// Package main provides the entry point for the senkyo CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/Sumatoshi-tech/senkyo/cmd/senkyo/commands"
	"github.com/Sumatoshi-tech/senkyo/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}
