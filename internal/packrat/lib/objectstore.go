package lib

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ObjectStore is a content-addressed blob store rooted at one package
// root. Objects live under objs/ named by their digest; in-progress
// writes live under objs/tmp until their digest is known, then become
// visible in a single rename so a reader can never observe a partially
// written object under its final name.
type ObjectStore struct {
	root   string
	client *http.Client
}

// NewObjectStore returns an object store for the given package root.
// Transfer policy (timeouts, retries, proxies) belongs to the supplied
// HTTP client; pass nil for http.DefaultClient.
func NewObjectStore(root string, client *http.Client) *ObjectStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &ObjectStore{root: root, client: client}
}

// ObjectPath returns the canonical path of an object based on its digest.
func (s *ObjectStore) ObjectPath(digest string) string {
	return filepath.Join(ObjectsDir(s.root), digest)
}

// Stage returns a scratch path under the staging directory, used while
// an object's content (and therefore digest) is not yet known.
func (s *ObjectStore) Stage(name string) string {
	return filepath.Join(TmpObjectsDir(s.root), name)
}

// Publish computes the digest of a staged file and atomically renames
// it to its final digest-named path. If an object with that digest
// already exists the staged duplicate is discarded, making a second
// publish of identical content a no-op.
func (s *ObjectStore) Publish(stagedPath string) (string, error) {
	digest, err := GetFileHash(stagedPath)
	if err != nil {
		return "", fmt.Errorf("failed to hash staged object: %w", err)
	}

	objPath := s.ObjectPath(digest)
	if _, err := os.Stat(objPath); err == nil {
		if err := os.Remove(stagedPath); err != nil {
			return "", fmt.Errorf("failed to discard duplicate staged object: %w", err)
		}
		return digest, nil
	}

	if err := os.Rename(stagedPath, objPath); err != nil {
		return "", fmt.Errorf("failed to publish object %s: %w", digest, err)
	}
	return digest, nil
}

// PublishFile stores a copy of an existing file as an object, leaving
// the source untouched. The content is copied into the staging area and
// published from there, so the atomic-rename guarantee still holds.
func (s *ObjectStore) PublishFile(srcPath string) (string, error) {
	digest, err := GetFileHash(srcPath)
	if err != nil {
		return "", err
	}

	objPath := s.ObjectPath(digest)
	if _, err := os.Stat(objPath); err == nil {
		return digest, nil
	}

	staged := s.Stage(filepath.Base(srcPath))
	if err := copyFile(srcPath, staged); err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", srcPath, err)
	}
	if err := os.Rename(staged, objPath); err != nil {
		return "", fmt.Errorf("failed to publish object %s: %w", digest, err)
	}
	return digest, nil
}

// FetchInto downloads an object from url to its canonical path and
// verifies the content against the expected digest. On a mismatch the
// file is removed before the error is returned, so no corrupted object
// is ever left under a digest-named path. The HTTP transport handles
// gzip transfer encoding transparently.
func (s *ObjectStore) FetchInto(digest, url string) error {
	resp, err := s.client.Get(url)
	if err != nil {
		return fmt.Errorf("download of %s failed: %w", digest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransferError{Digest: digest, StatusCode: resp.StatusCode}
	}

	localPath := s.ObjectPath(digest)
	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create object file for %s: %w", digest, err)
	}

	buf := make([]byte, ChunkSize)
	_, copyErr := io.CopyBuffer(out, resp.Body, buf)
	closeErr := out.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(localPath)
		if copyErr != nil {
			return fmt.Errorf("failed to write object %s: %w", digest, copyErr)
		}
		return fmt.Errorf("failed to write object %s: %w", digest, closeErr)
	}

	actual, err := GetFileHash(localPath)
	if err != nil {
		os.Remove(localPath)
		return err
	}
	if actual != digest {
		os.Remove(localPath)
		return &IntegrityError{Expected: digest, Actual: actual}
	}
	return nil
}

// RawFile resolves a File node's digest list to the backing object
// path. File objects are backed by exactly one object.
func (s *ObjectStore) RawFile(hashes []string) (string, error) {
	if len(hashes) != 1 {
		return "", fmt.Errorf("file objects must be contained in one object, got %d", len(hashes))
	}
	return s.ObjectPath(hashes[0]), nil
}

// copyFile copies src to dst, creating or truncating dst, and syncs the
// result to stable storage.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(destFile, sourceFile, buf); err != nil {
		return err
	}
	return destFile.Sync()
}
