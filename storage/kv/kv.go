// Package kv defines the durable key-value contract the Store runs on.
// One namespace key holds one whole JSON document; writes are wholesale
// overwrites, there are no partial updates at this level.
package kv

type Backend interface {
	// Get returns the stored document and whether the key exists at all.
	Get(key string) ([]byte, bool, error)
	// Set overwrites the document for key.
	Set(key string, doc []byte) error
	// Delete removes the key; deleting an absent key is a no-op.
	Delete(key string) error
}
