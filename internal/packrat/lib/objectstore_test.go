package lib

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupObjectStoreTest creates a package root with the object and
// staging directories in place and returns a store over it.
func setupObjectStoreTest(t *testing.T) (*ObjectStore, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), PackageDirName)
	require.NoError(t, EnsurePackageDirs(root, "tester"), "Failed to create package directories")
	return NewObjectStore(root, nil), root
}

// stageContent writes content to a staged path and returns it.
func stageContent(t *testing.T, store *ObjectStore, name string, content []byte) string {
	t.Helper()
	staged := store.Stage(name)
	require.NoError(t, os.WriteFile(staged, content, 0644), "Failed to write staged object")
	return staged
}

func TestObjectStorePublish(t *testing.T) {
	t.Run("publishes a staged object under its digest", func(t *testing.T) {
		store, _ := setupObjectStoreTest(t)
		content := []byte("hello object store")
		staged := stageContent(t, store, "build_artifact", content)

		digest, err := store.Publish(staged)
		require.NoError(t, err, "Publish failed unexpectedly")
		assert.Equal(t, GetHash(content), digest, "Publish must return the content digest")

		// The staged file is gone and the object is visible.
		_, err = os.Stat(staged)
		assert.True(t, os.IsNotExist(err), "Staged file must be consumed by publish")
		data, err := os.ReadFile(store.ObjectPath(digest))
		require.NoError(t, err, "Published object must exist at its digest path")
		assert.Equal(t, content, data)
	})

	t.Run("publishing identical content twice is idempotent", func(t *testing.T) {
		store, root := setupObjectStoreTest(t)
		content := []byte("write me once")

		first, err := store.Publish(stageContent(t, store, "copy_one", content))
		require.NoError(t, err)
		second, err := store.Publish(stageContent(t, store, "copy_two", content))
		require.NoError(t, err)
		assert.Equal(t, first, second, "Identical content must produce the same digest both times")

		// Exactly one object file on disk, and the duplicate staged
		// copy was discarded.
		objects, err := os.ReadDir(ObjectsDir(root))
		require.NoError(t, err)
		files := 0
		for _, entry := range objects {
			if !entry.IsDir() {
				files++
			}
		}
		assert.Equal(t, 1, files, "Expected exactly one object file after duplicate publish")

		staged, err := os.ReadDir(TmpObjectsDir(root))
		require.NoError(t, err)
		assert.Empty(t, staged, "Staging area must be empty after both publishes")
	})
}

func TestObjectStorePublishFile(t *testing.T) {
	store, _ := setupObjectStoreTest(t)
	content := []byte("keep the source")
	src := filepath.Join(t.TempDir(), "source.raw")
	require.NoError(t, os.WriteFile(src, content, 0644))

	digest, err := store.PublishFile(src)
	require.NoError(t, err, "PublishFile failed unexpectedly")
	assert.Equal(t, GetHash(content), digest)

	// The source survives and the object matches it.
	srcData, err := os.ReadFile(src)
	require.NoError(t, err, "PublishFile must leave the source file in place")
	assert.Equal(t, content, srcData)
	objData, err := os.ReadFile(store.ObjectPath(digest))
	require.NoError(t, err)
	assert.Equal(t, content, objData)

	// Publishing the same source again is a no-op.
	again, err := store.PublishFile(src)
	require.NoError(t, err)
	assert.Equal(t, digest, again)
}

func TestObjectStoreFetchInto(t *testing.T) {
	content := []byte("remote object bytes")
	digest := GetHash(content)

	t.Run("fetches and verifies an object", func(t *testing.T) {
		store, _ := setupObjectStoreTest(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(content)
		}))
		defer server.Close()

		require.NoError(t, store.FetchInto(digest, server.URL), "FetchInto failed unexpectedly")

		data, err := os.ReadFile(store.ObjectPath(digest))
		require.NoError(t, err)
		assert.Equal(t, content, data)
	})

	t.Run("removes a tampered download and reports the mismatch", func(t *testing.T) {
		store, _ := setupObjectStoreTest(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("tampered bytes"))
		}))
		defer server.Close()

		err := store.FetchInto(digest, server.URL)
		require.Error(t, err, "A tampered download must fail")

		var integrityErr *IntegrityError
		require.True(t, errors.As(err, &integrityErr), "Expected an IntegrityError, got %v", err)
		assert.Equal(t, digest, integrityErr.Expected)
		assert.Equal(t, GetHash([]byte("tampered bytes")), integrityErr.Actual)

		// No file may remain at the digest path.
		_, statErr := os.Stat(store.ObjectPath(digest))
		assert.True(t, os.IsNotExist(statErr), "No partial object may remain after an integrity failure")
	})

	t.Run("reports a non-2xx response as a transfer failure", func(t *testing.T) {
		store, _ := setupObjectStoreTest(t)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		err := store.FetchInto(digest, server.URL)
		require.Error(t, err)

		var transferErr *TransferError
		require.True(t, errors.As(err, &transferErr), "Expected a TransferError, got %v", err)
		assert.Equal(t, http.StatusNotFound, transferErr.StatusCode)
		assert.Equal(t, digest, transferErr.Digest)
	})
}

func TestObjectStoreRawFile(t *testing.T) {
	store, _ := setupObjectStoreTest(t)

	path, err := store.RawFile([]string{"abc123"})
	require.NoError(t, err)
	assert.Equal(t, store.ObjectPath("abc123"), path)

	_, err = store.RawFile([]string{"abc123", "def456"})
	assert.Error(t, err, "File nodes must be backed by exactly one object")
	_, err = store.RawFile(nil)
	assert.Error(t, err, "File nodes must be backed by exactly one object")
}
