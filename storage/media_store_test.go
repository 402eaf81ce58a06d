package storage

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndRemove(t *testing.T) {
	store, err := NewLocalMediaStore(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)

	key, err := store.Save("cat.png", []byte("raw bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, "cat.png", key)

	data, err := os.ReadFile(filepath.Join(store.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, []byte("raw bytes"), data)

	require.NoError(t, store.Remove(key))
	_, err = os.Stat(filepath.Join(store.Dir(), key))
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, store.Remove(key))
}

func TestSaveGeneratesUniqueKeys(t *testing.T) {
	store, err := NewLocalMediaStore(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)

	first, err := store.Save("cat.png", []byte("a"))
	require.NoError(t, err)
	second, err := store.Save("cat.png", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSaveDefaultsExtension(t *testing.T) {
	store, err := NewLocalMediaStore(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)

	key, err := store.Save("noextension", []byte("a"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpg"))
}

func TestGetUrlFromKey(t *testing.T) {
	store, err := NewLocalMediaStore(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)

	assert.Equal(t, "/images/abc.png", store.GetUrlFromKey("abc.png"))
}

func TestIsImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	assert.True(t, IsImage(buf.Bytes()))
	assert.False(t, IsImage([]byte("definitely not an image")))
	assert.False(t, IsImage(nil))
}
