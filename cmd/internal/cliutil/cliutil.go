// Package cliutil provides shared CLI utilities for mibprofile command-line tools.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// ClipboardNotice is printed once output has been copied to the clipboard.
const ClipboardNotice = "Profile yaml dump copied to your clipboard"

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	writeClipboard       = clipboard.WriteAll
)

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (*os.File, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// Publisher delivers command output to a file, the system clipboard or
// stdout, in that order of preference.
type Publisher struct {
	// OutputFile, when set, receives the output.
	OutputFile string
	// Clipboard allows copying to the system clipboard.
	Clipboard bool
	// Stdout and Stderr default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Publish writes content to the first usable destination. A clipboard that
// is unavailable or fails falls back to stdout with a warning.
func (p *Publisher) Publish(content string) error {
	stdout, stderr := p.Stdout, p.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	if p.OutputFile != "" {
		out, done, err := GetOutput(p.OutputFile)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
		defer done()
		if _, err := io.WriteString(out, content); err != nil {
			return fmt.Errorf("writing %s: %w", p.OutputFile, err)
		}
		return nil
	}

	if p.Clipboard && !clipboardUnsupported() {
		err := writeClipboard(content)
		if err == nil {
			_, _ = fmt.Fprintln(stdout, ClipboardNotice)
			return nil
		}
		_, _ = fmt.Fprintf(stderr, "warning: clipboard unavailable: %v\n", err)
	}

	_, err := io.WriteString(stdout, content)
	return err
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// PrintWarning writes a formatted warning message to stderr.
func PrintWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
