package storage

import "github.com/flipspace/flipspace/core/activity"

var _ activity.Repository = (*Store)(nil)

// AppendActivity appends to the user's dedicated log namespace. Logs are
// append-only and never pruned.
func (s *Store) AppendActivity(userID string, entry activity.Entry) error {
	key := nsActivityPrefix + userID
	entries := []activity.Entry{}
	if _, err := s.get(key, &entries); err != nil {
		return err
	}
	return s.set(key, append(entries, entry))
}

func (s *Store) ActivitiesByUser(userID string) ([]activity.Entry, error) {
	entries := []activity.Entry{}
	if _, err := s.get(nsActivityPrefix+userID, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
