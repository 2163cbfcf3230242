package lib

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedUpload(t *testing.T) {
	t.Run("streams a gzip frame that decompresses to the object bytes", func(t *testing.T) {
		store, _ := setupObjectStoreTest(t)
		content := bytes.Repeat([]byte("a compressible object body "), 1000)
		digest, err := store.Publish(stageContent(t, store, "payload", content))
		require.NoError(t, err)

		upload, err := store.CompressedUpload(digest)
		require.NoError(t, err, "CompressedUpload failed unexpectedly")
		defer upload.Close()

		compressed, err := io.ReadAll(upload)
		require.NoError(t, err)
		assert.Less(t, len(compressed), len(content), "The upload stream should actually be compressed")

		zr, err := gzip.NewReader(bytes.NewReader(compressed))
		require.NoError(t, err, "The stream must carry a valid gzip frame")
		decompressed, err := io.ReadAll(zr)
		require.NoError(t, err)
		require.NoError(t, zr.Close())
		assert.Equal(t, content, decompressed, "Decompressing the upload must reproduce the object")
	})

	t.Run("leaves the canonical object untouched", func(t *testing.T) {
		store, _ := setupObjectStoreTest(t)
		content := []byte("canonical bytes stay canonical")
		digest, err := store.Publish(stageContent(t, store, "payload", content))
		require.NoError(t, err)

		upload, err := store.CompressedUpload(digest)
		require.NoError(t, err)
		_, err = io.ReadAll(upload)
		require.NoError(t, err)
		require.NoError(t, upload.Close())

		data, err := os.ReadFile(store.ObjectPath(digest))
		require.NoError(t, err)
		assert.Equal(t, content, data, "Compression must never be persisted to the object path")
	})

	t.Run("fails for a missing object", func(t *testing.T) {
		store, _ := setupObjectStoreTest(t)
		_, err := store.CompressedUpload(GetHash([]byte("never stored")))
		assert.Error(t, err)
	})
}
