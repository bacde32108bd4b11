package domain

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// ConfigFileName is the name of the YAML project configuration file.
	ConfigFileName = "plate.yaml"

	// TOMLConfigFileName is the name of the TOML project configuration file.
	TOMLConfigFileName = "plate.toml"

	// DefaultRenderer is the renderer executable used when none is configured.
	DefaultRenderer = "ditaa"

	// DefaultPrefix is the artifact filename prefix used when none is given.
	DefaultPrefix = "ditaa"

	// DefaultOutDir is the default build output root.
	DefaultOutDir = "_build/html"

	// DefaultImagesDir is the directory under the output root holding artifacts.
	DefaultImagesDir = "_images"

	// InputExt is the extension of the serialized diagram source artifact.
	InputExt = ".ditaa"

	// OutputExt is the extension of the rendered image artifact.
	OutputExt = ".png"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout describes where artifacts live on disk and how they are addressed
// from generated documents.
type Layout struct {
	// OutDir is the build output root. It should be absolute.
	OutDir string
	// ImagesDir is the artifact directory relative to OutDir.
	ImagesDir string
	// ImagePath is the web-relative prefix used to reference artifacts.
	ImagePath string
}

// ImagesPath returns the filesystem path of the artifact directory.
func (l Layout) ImagesPath() string {
	return filepath.Join(l.OutDir, l.ImagesDir)
}

// ValidPrefix reports whether prefix keeps artifacts inside the images
// directory.
func ValidPrefix(prefix string) bool {
	return !strings.ContainsAny(prefix, `/\`)
}

// CheckPrefix returns ErrConfigInvalid for a prefix that fails ValidPrefix.
func CheckPrefix(prefix string) error {
	if ValidPrefix(prefix) {
		return nil
	}
	return errors.Join(ErrConfigInvalid,
		zerr.With(zerr.New("prefix must not contain a path separator"), "prefix", prefix))
}

// Artifacts derives the artifact pair for the given prefix and key.
// An empty prefix falls back to DefaultPrefix.
func (l Layout) Artifacts(prefix string, key CacheKey) ArtifactPaths {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	base := prefix + "-" + key.String()
	inName := base + InputExt
	outName := base + OutputExt

	return ArtifactPaths{
		InputName:  inName,
		OutputName: outName,
		InputPath:  filepath.Join(l.ImagesPath(), inName),
		OutputPath: filepath.Join(l.ImagesPath(), outName),
		InputURI:   path.Join(l.ImagePath, inName),
		OutputURI:  path.Join(l.ImagePath, outName),
	}
}

// ArtifactPaths is the cached pair of files produced for one diagram.
type ArtifactPaths struct {
	InputName  string
	OutputName string

	// InputPath and OutputPath are filesystem paths used for existence
	// checks and renderer arguments.
	InputPath  string
	OutputPath string

	// InputURI and OutputURI are web-relative references for embedding.
	InputURI  string
	OutputURI string
}
