package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrTooLarge is returned by Save when the payload exceeds the configured limit.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Uploads stores uploaded payloads under server-generated names in one directory.
// The client's filename never reaches the filesystem.
type Uploads struct {
	dir      string
	maxBytes int64
}

// NewUploads creates dir if needed. maxBytes <= 0 means no limit.
func NewUploads(dir string, maxBytes int64) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploads{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory uploads are written to.
func (u *Uploads) Dir() string {
	return u.dir
}

// Save copies r into a new file and returns its path and a release func that
// removes it. release is idempotent and must be called once the caller is done,
// whatever the outcome. On error nothing is left on disk.
func (u *Uploads) Save(r io.Reader) (string, func(), error) {
	path := filepath.Join(u.dir, uuid.NewString()+".upload")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("create upload file: %w", err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() { _ = os.Remove(path) })
	}

	src := r
	if u.maxBytes > 0 {
		src = io.LimitReader(r, u.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && u.maxBytes > 0 && n > u.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		release()
		return "", nil, fmt.Errorf("write upload file: %w", err)
	}
	return path, release, nil
}

// UsageBytes reports how many bytes are currently held in the upload directory.
func (u *Uploads) UsageBytes() (int64, error) {
	return DiskUsageBytes(u.dir)
}
