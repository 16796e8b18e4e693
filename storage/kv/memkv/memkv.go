// Package memkv is the in-memory kv.Backend used by tests and throwaway
// sandboxes; contents are lost on process exit.
package memkv

import (
	"sync"

	"github.com/flipspace/flipspace/storage/kv"
)

type Backend struct {
	sync.RWMutex
	table map[string][]byte
}

var _ kv.Backend = (*Backend)(nil)

func Open() *Backend {
	return &Backend{table: make(map[string][]byte)}
}

func (b *Backend) Get(key string) ([]byte, bool, error) {
	b.RLock()
	defer b.RUnlock()

	doc, ok := b.table[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	return cp, true, nil
}

func (b *Backend) Set(key string, doc []byte) error {
	b.Lock()
	defer b.Unlock()

	cp := make([]byte, len(doc))
	copy(cp, doc)
	b.table[key] = cp
	return nil
}

func (b *Backend) Delete(key string) error {
	b.Lock()
	defer b.Unlock()
	delete(b.table, key)
	return nil
}
