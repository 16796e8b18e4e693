// Package storage is the persistence layer: a namespaced, synchronous
// read/write Store over a kv.Backend, one logical collection per namespace
// key. Serialization is pure JSON pass-through; all access is serialized
// through the single in-process Store owner, so read-modify-write cycles in
// the service layer never interleave.
package storage

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/flipspace/flipspace/core/user"
	"github.com/flipspace/flipspace/storage/kv"
)

// Namespace keys. These are the externally relevant storage layout contract;
// renaming one orphans previously persisted state.
const (
	nsSession       = "flipspace_auth_user"
	nsResources     = "flipspace_resources"
	nsQuizzes       = "flipspace_quizzes"
	nsDiscussions   = "flipspace_discussions"
	nsConversations = "flipspace_conversations"
	nsProgress      = "flipspace_progress"
	nsQuizAttempts  = "flipspace_quiz_attempts"
	nsSocial        = "flipspace_social"

	nsActivityPrefix = "user-activity-"
)

type Store struct {
	kv kv.Backend
}

func New(backend kv.Backend) *Store {
	return &Store{kv: backend}
}

// get unmarshals the namespace document into dst; ok == false means the
// namespace was never written.
func (s *Store) get(key string, dst interface{}) (bool, error) {
	doc, ok, err := s.kv.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(doc, dst); err != nil {
		return false, errors.Wrapf(err, "decoding %s", key)
	}
	return true, nil
}

// set overwrites the namespace document wholesale.
func (s *Store) set(key string, v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return s.kv.Set(key, doc)
}

// Session

var _ user.Repository = (*Store)(nil)

func (s *Store) GetSession() (user.Session, bool, error) {
	var sess user.Session
	ok, err := s.get(nsSession, &sess)
	return sess, ok, err
}

func (s *Store) SetSession(sess user.Session) error {
	return s.set(nsSession, sess)
}

func (s *Store) ClearSession() error {
	return s.kv.Delete(nsSession)
}
