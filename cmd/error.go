package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	isatty "github.com/mattn/go-isatty"
)

// colorize indicates whether or not diagnostic output should be colorized. It
// is computed once at startup based on whether standard error is a terminal.
var colorize = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

// Warning prints a warning message to standard error.
func Warning(message string) {
	if colorize {
		fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
	} else {
		fmt.Fprintln(os.Stderr, "Warning:", message)
	}
}

// Error prints an error message to standard error.
func Error(err error) {
	if colorize {
		fmt.Fprintln(color.Error, color.RedString("Error:"), err)
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}

// Fatal prints an error message to standard error and then terminates the
// process with an error exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
