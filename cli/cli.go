// Package cli provides the command-line interface adapter for the
// network-topology interpreter. This package handles argument parsing
// and delegates to the runner for execution.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/shadowCow/nettopo/runner"
)

// Config holds the configuration for the CLI.
type Config struct {
	Args   []string  // Command-line arguments (including program name)
	Output io.Writer // Output stream for program output
}

// Run executes the CLI with the given configuration.
// It parses the arguments, validates them, and delegates to the runner.
func Run(config Config) error {
	debug := false
	visualize := false
	var filePath string

	args := config.Args[1:]

	for len(args) > 0 {
		arg := args[0]
		switch arg {
		case "--debug":
			debug = true
			args = args[1:]
		case "--visualize", "-v":
			visualize = true
			args = args[1:]
		default:
			filePath = arg
			args = args[1:]
		}
	}

	if filePath == "" {
		return fmt.Errorf("usage: nettopo [--debug] [--visualize|-v] <file.net>")
	}

	result, err := runner.Run(filePath, config.Output, debug)
	if err != nil {
		return formatError(err)
	}

	if visualize {
		for _, line := range result.Topology.Snapshot() {
			fmt.Fprintln(config.Output, line)
		}
	}

	return nil
}

// formatError tags the error with the phase it surfaced from, so the
// driver prints "Error <kind>: <reason>" as the external interface
// requires.
func formatError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "lexical error"):
		return fmt.Errorf("Error lexical: %s", msg)
	case strings.Contains(msg, "syntax error"):
		return fmt.Errorf("Error syntax: %s", msg)
	case strings.Contains(msg, "semantic error"):
		return fmt.Errorf("Error semantic: %s", msg)
	case strings.Contains(msg, "runtime error"):
		return fmt.Errorf("Error runtime: %s", msg)
	default:
		return err
	}
}
