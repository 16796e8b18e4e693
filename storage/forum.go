package storage

import "github.com/flipspace/flipspace/core/forum"

var _ forum.Repository = (*Store)(nil)

func (s *Store) GetThreads() ([]forum.Thread, bool, error) {
	var threads []forum.Thread
	ok, err := s.get(nsDiscussions, &threads)
	return threads, ok, err
}

func (s *Store) SetThreads(threads []forum.Thread) error {
	return s.set(nsDiscussions, threads)
}
