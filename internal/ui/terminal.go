// Package ui provides terminal styling and output helpers for the beads CLI.
package ui

import (
	"os"

	"golang.org/x/term"
)

const (
	defaultWidth = 80
	// MaxReadableWidth caps wrapping on wide terminals.
	MaxReadableWidth = 100
)

// IsTerminal returns true if stdout is connected to a terminal (TTY).
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Width returns the stdout terminal width, capped at MaxReadableWidth, or
// 80 when stdout is not a terminal.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return min(w, MaxReadableWidth)
}

// ShouldUseColor determines if ANSI color codes should be used.
//   - NO_COLOR (https://no-color.org/) disables color
//   - CLICOLOR=0 disables color
//   - CLICOLOR_FORCE forces color even without a TTY
//
// Otherwise color follows TTY detection.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if os.Getenv("CLICOLOR_FORCE") != "" {
		return true
	}
	return IsTerminal()
}
