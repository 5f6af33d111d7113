// Package main is the entry point for the tw CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/taskwatch/internal/app"
	"github.com/runoshun/taskwatch/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := cli.NewRootCommand(app.New, version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}
