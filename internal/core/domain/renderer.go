package domain

import (
	"slices"
	"time"
)

// RendererConfig is the build-wide renderer configuration. It is read-only
// once rendering starts.
type RendererConfig struct {
	// Executable is the renderer name or path.
	Executable string
	// Args are applied to every invocation, before per-call flags.
	Args []string
	// Timeout bounds a single renderer run. Zero disables the bound.
	Timeout time.Duration
	// TolerateClosedInput accepts a zero exit from a renderer that closed
	// its standard input before reading the whole diagram.
	TolerateClosedInput bool
}

// Argv builds the renderer argument vector:
// executable, default args, per-call flags, input path, output path.
func (c RendererConfig) Argv(flags []string, inputPath, outputPath string) []string {
	argv := make([]string, 0, 3+len(c.Args)+len(flags))
	argv = append(argv, c.Executable)
	argv = append(argv, c.Args...)
	argv = append(argv, flags...)
	argv = append(argv, inputPath, outputPath)
	return argv
}

// Clone returns a copy that shares no slices with c.
func (c RendererConfig) Clone() RendererConfig {
	c.Args = slices.Clone(c.Args)
	return c
}

// ProcessResult is what the renderer process left behind.
type ProcessResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	// InputClosed is set when the process closed its standard input before
	// the whole diagram was written.
	InputClosed bool
	// TimedOut is set when the process was killed because the run exceeded
	// the configured timeout.
	TimedOut bool
}
