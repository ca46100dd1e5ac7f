/*
Package file persists the store snapshot as a single JSON document on
disk - the server-side stand-in for browser local storage.

WRITE DISCIPLINE:
  The file handle is held open for the process lifetime. Each save seeks
  to the start, rewrites the blob, truncates any leftover tail from a
  previously longer snapshot, and fsyncs. Reads happen once, at Open.
*/
package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
)

type Backend struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open opens (or creates) the snapshot file, creating parent
// directories as needed.
func Open(path string) (*Backend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	return &Backend{file: f, path: path}, nil
}

func (b *Backend) Load(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	info, err := b.file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}
	if _, err := b.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(b.file)
}

func (b *Backend) Save(_ context.Context, blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	n, err := b.file.Write(blob)
	if err != nil {
		return err
	}
	// Truncate in case the new snapshot is shorter than the old one.
	if err := b.file.Truncate(int64(n)); err != nil {
		return err
	}
	return b.file.Sync()
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.file.Close()
}
