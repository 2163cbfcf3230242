package lib

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// uploadSpool is a temporary file holding the compressed form of one
// object; closing it removes the spool from disk.
type uploadSpool struct {
	file *os.File
}

func (u *uploadSpool) Read(p []byte) (int, error) {
	return u.file.Read(p)
}

func (u *uploadSpool) Close() error {
	name := u.file.Name()
	closeErr := u.file.Close()
	removeErr := os.Remove(name)
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}

// CompressedUpload returns a reader over a gzip-compressed copy of the
// named object, suitable for upload to a registry. The object is
// streamed through a maximum-level compressor into a temporary spool;
// the canonical object bytes on disk are never touched. The caller must
// Close the reader to discard the spool.
func (s *ObjectStore) CompressedUpload(digest string) (io.ReadCloser, error) {
	in, err := os.Open(s.ObjectPath(digest))
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", digest, err)
	}
	defer in.Close()

	spool, err := os.CreateTemp("", "packrat-upload-")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload spool: %w", err)
	}

	discard := func() {
		spool.Close()
		os.Remove(spool.Name())
	}

	zw, err := gzip.NewWriterLevel(spool, gzip.BestCompression)
	if err != nil {
		discard()
		return nil, err
	}

	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(zw, in, buf); err != nil {
		discard()
		return nil, fmt.Errorf("failed to compress object %s: %w", digest, err)
	}
	if err := zw.Close(); err != nil {
		discard()
		return nil, fmt.Errorf("failed to finish compressing object %s: %w", digest, err)
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		discard()
		return nil, err
	}
	return &uploadSpool{file: spool}, nil
}
