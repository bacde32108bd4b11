// Package config loads the plate configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for YAML and TOML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the configuration. An explicit path is read relative to cwd
// and must exist. Without one, the nearest plate.yaml or plate.toml found by
// walking up from cwd is used, and defaults apply when there is none.
func (l *Loader) Load(cwd, path string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	baseDir := cwd

	configPath := path
	if configPath != "" && !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cwd, configPath)
	}
	if configPath == "" {
		configPath = findConfiguration(cwd)
	}

	if configPath != "" {
		if err := l.apply(cfg, configPath); err != nil {
			return nil, err
		}
		baseDir = filepath.Dir(configPath)
		l.Logger.Debug("config: loaded " + configPath)
	}

	if !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(baseDir, cfg.OutDir)
	}

	if field, ok := cfg.Validate(); !ok {
		return nil, errors.Join(domain.ErrConfigInvalid,
			zerr.With(zerr.With(zerr.New("invalid value for "+field), "field", field), "path", configPath))
	}

	return cfg, nil
}

// findConfiguration walks up from cwd and returns the first config file found,
// preferring plate.yaml over plate.toml within a directory.
func findConfiguration(cwd string) string {
	currentDir := cwd
	for {
		for _, name := range []string{domain.ConfigFileName, domain.TOMLConfigFileName} {
			candidate := filepath.Join(currentDir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

func (l *Loader) apply(cfg *domain.Config, configPath string) error {
	// #nosec G304 -- configPath is chosen by the user or found by discovery
	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", configPath))
	}

	var file File
	if err := l.decode(configPath, data, &file); err != nil {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", configPath))
	}

	return merge(cfg, &file, configPath)
}

func (l *Loader) decode(configPath string, data []byte, file *File) error {
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		md, err := toml.Decode(string(data), file)
		if err != nil {
			return err
		}
		for _, key := range md.Undecoded() {
			l.Logger.Warn(fmt.Sprintf("unknown key %q in %s", key.String(), filepath.Base(configPath)))
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func merge(cfg *domain.Config, file *File, configPath string) error {
	setString(&cfg.Renderer, file.Renderer)
	setString(&cfg.OutDir, file.OutDir)
	setString(&cfg.ImagesDir, file.ImagesDir)
	setString(&cfg.ImagePath, file.ImagePath)
	setString(&cfg.Prefix, file.Prefix)
	setString(&cfg.Format, file.Format)

	if file.RendererArgs != nil {
		cfg.RendererArgs = file.RendererArgs
	}
	if file.InlineArgs != nil {
		cfg.InlineArgs = file.InlineArgs
	}
	if file.TolerateClosedInput != nil {
		cfg.TolerateClosedInput = *file.TolerateClosedInput
	}
	if file.Parallelism != nil {
		cfg.Parallelism = *file.Parallelism
	}
	if file.Timeout != nil {
		timeout, err := parseTimeout(*file.Timeout)
		if err != nil {
			return errors.Join(domain.ErrConfigInvalid,
				zerr.With(zerr.With(zerr.Wrap(err, "invalid value for timeout"), "field", "timeout"), "path", configPath))
		}
		cfg.Timeout = timeout
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseTimeout accepts Go durations. A bare "0" disables the timeout.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "0" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
