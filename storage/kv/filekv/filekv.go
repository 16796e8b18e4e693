// Package filekv is the default kv.Backend: one JSON document per namespace
// key, stored as a file in a data directory. The closest Go analog to the
// per-origin key-value storage the UI originally persisted into.
package filekv

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/storage/kv"
)

type Backend struct {
	mu  sync.Mutex
	dir string
}

var _ kv.Backend = (*Backend)(nil)

func Open(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data dir %s", dir)
	}
	return &Backend{dir: dir}, nil
}

func (b *Backend) Get(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "reading %s", key)
	}
	return doc, true, nil
}

// Set writes via a temp file and rename so a crash mid-write never leaves a
// truncated document behind.
func (b *Backend) Set(key string, doc []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", key)
	}
	if err := os.Rename(tmp.Name(), b.path(key)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "writing %s", key)
	}
	return nil
}

func (b *Backend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(b.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}

func (b *Backend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}
