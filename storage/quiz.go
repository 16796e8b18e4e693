package storage

import (
	"time"

	"github.com/flipspace/flipspace/core/quiz"
)

var _ quiz.Repository = (*Store)(nil)

func (s *Store) GetQuizzes() ([]quiz.Quiz, bool, error) {
	var quizzes []quiz.Quiz
	ok, err := s.get(nsQuizzes, &quizzes)
	return quizzes, ok, err
}

func (s *Store) SetQuizzes(quizzes []quiz.Quiz) error {
	return s.set(nsQuizzes, quizzes)
}

// SaveAttempt appends a grading record to the (userID, quizID) history.
// The history is append-only: attempts are never mutated or deleted, and
// Total is the caller's snapshot of the question count at submission time.
func (s *Store) SaveAttempt(userID, quizID string, score, total int) (quiz.Attempt, error) {
	attempts := make(map[string]map[string][]quiz.Attempt)
	if _, err := s.get(nsQuizAttempts, &attempts); err != nil {
		return quiz.Attempt{}, err
	}
	if attempts[userID] == nil {
		attempts[userID] = make(map[string][]quiz.Attempt)
	}
	attempt := quiz.Attempt{
		Score:      score,
		Total:      total,
		Percentage: quiz.Percentage(score, total),
		Timestamp:  time.Now().UTC(),
	}
	attempts[userID][quizID] = append(attempts[userID][quizID], attempt)
	if err := s.set(nsQuizAttempts, attempts); err != nil {
		return quiz.Attempt{}, err
	}
	return attempt, nil
}

func (s *Store) AttemptsByUser(userID string) (map[string][]quiz.Attempt, error) {
	attempts := make(map[string]map[string][]quiz.Attempt)
	if _, err := s.get(nsQuizAttempts, &attempts); err != nil {
		return nil, err
	}
	history := attempts[userID]
	if history == nil {
		history = make(map[string][]quiz.Attempt)
	}
	return history, nil
}
