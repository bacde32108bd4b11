package domain

import (
	"runtime"
	"slices"
	"strings"
	"time"
)

// Output formats a build can produce.
const (
	FormatHTML  = "html"
	FormatLaTeX = "latex"
)

// DefaultTimeout bounds a renderer run when the configuration does not say otherwise.
const DefaultTimeout = 2 * time.Minute

// DefaultInlineArgs are the per-call flags given to inline diagrams.
var DefaultInlineArgs = []string{"--transparent"}

// Config is the resolved project configuration.
type Config struct {
	Renderer            string
	RendererArgs        []string
	InlineArgs          []string
	OutDir              string
	ImagesDir           string
	ImagePath           string
	Prefix              string
	Timeout             time.Duration
	TolerateClosedInput bool
	Parallelism         int
	Format              string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Renderer:   DefaultRenderer,
		InlineArgs: slices.Clone(DefaultInlineArgs),
		OutDir:     DefaultOutDir,
		ImagesDir:  DefaultImagesDir,
		ImagePath:  DefaultImagesDir,
		Prefix:     DefaultPrefix,
		Timeout:    DefaultTimeout,
		Format:     FormatHTML,
	}
}

// RendererConfig returns the immutable renderer configuration.
func (c *Config) RendererConfig() RendererConfig {
	return RendererConfig{
		Executable:          c.Renderer,
		Args:                slices.Clone(c.RendererArgs),
		Timeout:             c.Timeout,
		TolerateClosedInput: c.TolerateClosedInput,
	}
}

// Layout returns the artifact layout.
func (c *Config) Layout() Layout {
	return Layout{
		OutDir:    c.OutDir,
		ImagesDir: c.ImagesDir,
		ImagePath: c.ImagePath,
	}
}

// Workers returns the build parallelism, defaulting to the number of CPUs.
func (c *Config) Workers() int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return runtime.NumCPU()
}

// Validate reports the first invalid field, or nil.
func (c *Config) Validate() (field string, ok bool) {
	switch {
	case strings.TrimSpace(c.Renderer) == "":
		return "renderer", false
	case c.Timeout < 0:
		return "timeout", false
	case c.Parallelism < 0:
		return "parallelism", false
	case c.Format != FormatHTML && c.Format != FormatLaTeX:
		return "format", false
	case !ValidPrefix(c.Prefix):
		return "prefix", false
	}
	return "", true
}
