// Package sqlkv backs the Store with a single Postgres table of JSON
// documents, one row per namespace key. Schema lives in /migrations and is
// managed with goose (see the admin CLI).
package sqlkv

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/storage/kv"
)

type Backend struct {
	db *sqlx.DB
}

var _ kv.Backend = (*Backend)(nil)

func Open(databaseURL string) (*Backend, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Get(key string) ([]byte, bool, error) {
	var doc []byte
	err := b.db.Get(&doc, "SELECT doc FROM kv WHERE namespace = $1", key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading %s", key)
	}
	return doc, true, nil
}

func (b *Backend) Set(key string, doc []byte) error {
	_, err := b.db.Exec(
		`INSERT INTO kv (namespace, doc) VALUES ($1, $2)
		 ON CONFLICT (namespace) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		key, doc,
	)
	return errors.Wrapf(err, "writing %s", key)
}

func (b *Backend) Delete(key string) error {
	_, err := b.db.Exec("DELETE FROM kv WHERE namespace = $1", key)
	return errors.Wrapf(err, "deleting %s", key)
}

func (b *Backend) Close() error {
	return b.db.Close()
}

// DB exposes the underlying handle for migrations.
func (b *Backend) DB() *sql.DB {
	return b.db.DB
}
