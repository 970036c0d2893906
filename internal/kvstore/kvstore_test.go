package kvstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestOpenEmptyDir(t *testing.T) {
	t.Parallel()

	_, err := Open("")
	require.Error(t, err)
}

func TestSetGetRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	require.NoError(t, err)

	value := []byte(`[{"id":"n1"}]`)
	require.NoError(t, store.Set("notifications", value))

	got, err := store.Get("notifications")
	require.NoError(t, err)
	require.Equal(t, value, got)
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist), "Missing keys report os.ErrNotExist")
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("k", []byte("first")))
	require.NoError(t, store.Set("k", []byte("second")))

	got, err := store.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "Only the final file remains after a write")
	require.Equal(t, "k.json", entries[0].Name())
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("k", []byte("v")))
	require.NoError(t, store.Delete("k"))

	_, err = store.Get("k")
	require.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, store.Delete("k"), "Deleting a missing key is not an error")
}
