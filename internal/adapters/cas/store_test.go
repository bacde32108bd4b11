package cas_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plate/internal/adapters/cas"
	"go.trai.ch/plate/internal/core/domain"
)

func newStore(t *testing.T) (*cas.Store, string) {
	t.Helper()
	outDir := t.TempDir()
	store, err := cas.NewStore(domain.Layout{
		OutDir:    outDir,
		ImagesDir: "_images",
		ImagePath: "../_images",
	})
	require.NoError(t, err)
	return store, outDir
}

func testKey(b byte) domain.CacheKey {
	var k domain.CacheKey
	for i := range k {
		k[i] = b
	}
	return k
}

func TestStore_Paths(t *testing.T) {
	store, outDir := newStore(t)
	key := testKey(0xab)

	paths := store.Paths("ditaa", key)

	hex := key.String()
	assert.Equal(t, "ditaa-"+hex+".ditaa", paths.InputName)
	assert.Equal(t, "ditaa-"+hex+".png", paths.OutputName)
	assert.Equal(t, filepath.Join(outDir, "_images", paths.InputName), paths.InputPath)
	assert.Equal(t, filepath.Join(outDir, "_images", paths.OutputName), paths.OutputPath)
	assert.Equal(t, "../_images/"+paths.OutputName, paths.OutputURI)
	assert.Equal(t, "../_images/"+paths.InputName, paths.InputURI)
}

func TestStore_Paths_DefaultPrefix(t *testing.T) {
	store, _ := newStore(t)

	paths := store.Paths("", testKey(1))

	assert.Equal(t, "ditaa-"+testKey(1).String()+".png", paths.OutputName)
}

func TestStore_ExistsOnlyAfterOutputWritten(t *testing.T) {
	store, _ := newStore(t)
	paths := store.Paths("ditaa", testKey(2))

	ok, err := store.Exists(paths)
	require.NoError(t, err)
	assert.False(t, ok, "missing directory is a miss")

	require.NoError(t, store.Prepare())
	require.NoError(t, store.WriteInput(paths, []byte("+-+")))

	ok, err = store.Exists(paths)
	require.NoError(t, err)
	assert.False(t, ok, "input artifact alone is not a hit")

	require.NoError(t, os.WriteFile(paths.OutputPath, []byte("png"), 0o600))

	ok, err = store.Exists(paths)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_ExistsIgnoresDirectories(t *testing.T) {
	store, _ := newStore(t)
	paths := store.Paths("ditaa", testKey(3))
	require.NoError(t, os.MkdirAll(paths.OutputPath, 0o750))

	ok, err := store.Exists(paths)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Discard(t *testing.T) {
	store, _ := newStore(t)
	paths := store.Paths("ditaa", testKey(4))
	require.NoError(t, store.Prepare())
	require.NoError(t, store.WriteInput(paths, []byte("+-+")))
	require.NoError(t, os.WriteFile(paths.OutputPath, []byte("png"), 0o600))

	require.NoError(t, store.Discard(paths))

	ok, err := store.Exists(paths)
	require.NoError(t, err)
	assert.False(t, ok, "discarded output is a miss")
	assert.FileExists(t, paths.InputPath)

	require.NoError(t, store.Discard(paths), "missing output is not an error")
}

func TestStore_DiscardFailure(t *testing.T) {
	store, _ := newStore(t)
	paths := store.Paths("ditaa", testKey(5))
	require.NoError(t, os.MkdirAll(filepath.Join(paths.OutputPath, "child"), 0o750))

	err := store.Discard(paths)
	require.ErrorIs(t, err, domain.ErrArtifactDiscardFailed)
}

func TestStore_PrepareIsIdempotentUnderConcurrency(t *testing.T) {
	store, _ := newStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Prepare()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.DirExists(t, store.Dir())
}

func TestStore_PrepareFailsWhenPathIsAFile(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "_images"), nil, 0o600))

	store, err := cas.NewStore(domain.Layout{OutDir: outDir, ImagesDir: "_images"})
	require.NoError(t, err)

	err = store.Prepare()
	require.ErrorIs(t, err, domain.ErrImagesDirCreateFailed)
}

func TestStore_WriteInputOverwritesVerbatim(t *testing.T) {
	store, _ := newStore(t)
	paths := store.Paths("ditaa", testKey(4))
	require.NoError(t, store.Prepare())

	require.NoError(t, store.WriteInput(paths, []byte("old content that is longer")))
	require.NoError(t, store.WriteInput(paths, []byte("+--+\n|a |\n+--+")))

	got, err := os.ReadFile(paths.InputPath)
	require.NoError(t, err)
	assert.Equal(t, "+--+\n|a |\n+--+", string(got))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStore_WriteInputWithoutDirectory(t *testing.T) {
	store, _ := newStore(t)
	paths := store.Paths("ditaa", testKey(5))

	err := store.WriteInput(paths, []byte("x"))
	require.ErrorIs(t, err, domain.ErrInputWriteFailed)
}

func TestNewStore_ResolvesRelativeOutDir(t *testing.T) {
	t.Chdir(t.TempDir())

	store, err := cas.NewStore(domain.Layout{OutDir: "build", ImagesDir: "_images"})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(store.Dir()))
}
