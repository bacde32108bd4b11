package watcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plate/internal/adapters/watcher"
	"go.trai.ch/plate/internal/core/domain"
)

func TestFingerprints_Changed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.rst")
	require.NoError(t, os.WriteFile(path, []byte("one"), domain.FilePerm))

	fp := watcher.NewFingerprints()

	changed, err := fp.Changed(path)
	require.NoError(t, err)
	assert.True(t, changed, "first sighting counts as a change")

	changed, err = fp.Changed(path)
	require.NoError(t, err)
	assert.False(t, changed, "same content")

	require.NoError(t, os.WriteFile(path, []byte("two"), domain.FilePerm))
	changed, err = fp.Changed(path)
	require.NoError(t, err)
	assert.True(t, changed)

	fp.Forget(path)
	changed, err = fp.Changed(path)
	require.NoError(t, err)
	assert.True(t, changed, "forgotten paths start over")
}

func TestFingerprints_MissingFile(t *testing.T) {
	fp := watcher.NewFingerprints()

	_, err := fp.Changed(filepath.Join(t.TempDir(), "gone.rst"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
