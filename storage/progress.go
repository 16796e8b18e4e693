package storage

import "github.com/flipspace/flipspace/core/progress"

var _ progress.Repository = (*Store)(nil)

// MarkCompleted idempotently inserts resourceID into the user's completed
// set and reports whether an insert actually happened. Callers use the flag
// to bump resource counters exactly once per user.
func (s *Store) MarkCompleted(userID, resourceID string) (bool, error) {
	return s.markProgress(userID, resourceID, func(p *progress.Progress) *[]string { return &p.Completed })
}

// MarkViewed is MarkCompleted for the views set.
func (s *Store) MarkViewed(userID, resourceID string) (bool, error) {
	return s.markProgress(userID, resourceID, func(p *progress.Progress) *[]string { return &p.Views })
}

func (s *Store) markProgress(userID, resourceID string, set func(*progress.Progress) *[]string) (bool, error) {
	all := make(map[string]progress.Progress)
	if _, err := s.get(nsProgress, &all); err != nil {
		return false, err
	}
	rec := all[userID]
	if rec.Completed == nil {
		rec.Completed = []string{}
	}
	if rec.Views == nil {
		rec.Views = []string{}
	}
	ids := set(&rec)
	for _, id := range *ids {
		if id == resourceID {
			return false, nil // already present; re-marking is a no-op
		}
	}
	*ids = append(*ids, resourceID)
	all[userID] = rec
	if err := s.set(nsProgress, all); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) GetProgress(userID string) (progress.Progress, error) {
	all := make(map[string]progress.Progress)
	if _, err := s.get(nsProgress, &all); err != nil {
		return progress.Progress{}, err
	}
	rec, ok := all[userID]
	if !ok {
		return progress.Progress{Completed: []string{}, Views: []string{}}, nil
	}
	return rec, nil
}

// ResetProgress clears both sets to empty. Quiz attempts and activity logs
// live under other namespaces and are untouched.
func (s *Store) ResetProgress(userID string) error {
	all := make(map[string]progress.Progress)
	if _, err := s.get(nsProgress, &all); err != nil {
		return err
	}
	all[userID] = progress.Progress{Completed: []string{}, Views: []string{}}
	return s.set(nsProgress, all)
}
