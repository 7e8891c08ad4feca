package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/peterbourgon/diskv/v3"
)

// FileKV keeps each key in its own file under <dir>/kv. A lock file
// guards the directory so two processes cannot interleave the
// write-all flush the tracker performs after every mutation.
type FileKV struct {
	d    *diskv.Diskv
	lock *flock.Flock
}

func OpenFile(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}
	lock := flock.New(filepath.Join(dir, ".lock"))
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("storage: lock data dir: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}
	d := diskv.New(diskv.Options{
		BasePath:     filepath.Join(dir, "kv"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &FileKV{d: d, lock: lock}, nil
}

func (s *FileKV) Load(key string) (string, bool, error) {
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileKV) Save(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func (s *FileKV) Close() error {
	return s.lock.Unlock()
}
