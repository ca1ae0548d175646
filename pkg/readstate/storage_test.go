package readstate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"announce-feed/pkg/readstate"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	fs, err := readstate.NewFileStorage(dir)
	require.NoError(t, err)

	_, ok, err := fs.Get(readstate.Key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Set(readstate.Key, `["a"]`))
	v, ok, err := fs.Get(readstate.Key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["a"]`, v)

	b, err := os.ReadFile(filepath.Join(dir, readstate.Key+".json"))
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStorage_RejectsPathKeys(t *testing.T) {
	fs, err := readstate.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, fs.Set(key, "x"), key)
		_, _, err := fs.Get(key)
		assert.Error(t, err, key)
	}
}

func TestFileStorage_EmptyDir(t *testing.T) {
	_, err := readstate.NewFileStorage("")
	require.Error(t, err)
}

func TestTracker_OverFileStorage(t *testing.T) {
	dir := t.TempDir()
	fs, err := readstate.NewFileStorage(dir)
	require.NoError(t, err)

	tr, err := readstate.New(fs)
	require.NoError(t, err)
	require.NoError(t, tr.MarkAllRead([]string{"a", "b"}))

	fs2, err := readstate.NewFileStorage(dir)
	require.NoError(t, err)
	tr2, err := readstate.New(fs2)
	require.NoError(t, err)
	assert.Equal(t, 1, tr2.UnreadCount([]string{"a", "b", "c"}))
}
