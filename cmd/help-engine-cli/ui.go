// Package main provides UI utilities for the help engine CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// UI provides user-friendly output utilities.
type UI struct {
	jsonMode bool
	spin     *spinner.Spinner
}

// NewUI creates a new UI instance.
func NewUI(jsonMode bool) *UI {
	return &UI{jsonMode: jsonMode}
}

// StartSpinner shows a spinner with the given message while work runs.
func (ui *UI) StartSpinner(message string) {
	if ui.jsonMode {
		return
	}
	ui.spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	ui.spin.Suffix = " " + message
	ui.spin.Start()
}

// StopSpinner stops the active spinner, if any.
func (ui *UI) StopSpinner() {
	if ui.spin != nil {
		ui.spin.Stop()
		ui.spin = nil
	}
}

// Success prints a success message.
func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgGreen).Printf("✓ %s\n", fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (ui *UI) Error(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Info prints an informational message.
func (ui *UI) Info(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	fmt.Printf("%s\n", fmt.Sprintf(format, args...))
}

// Heading prints a bold section heading.
func (ui *UI) Heading(format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.Bold).Printf("%s\n", fmt.Sprintf(format, args...))
}

// Chip prints a navigation chip suggestion.
func (ui *UI) Chip(label, route string) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgCyan).Printf("→ %s (%s)\n", label, route)
}
