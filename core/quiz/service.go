package quiz

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
)

var (
	// errors
	ErrNotFound  = errors.New("quiz not found")
	ErrEmptyQuiz = errors.New("quiz has no questions")
)

type (
	// Repository persists the Quizzes collection wholesale and the per-user
	// attempt histories. ok == false on read means fall back to seed data.
	Repository interface {
		GetQuizzes() ([]Quiz, bool, error)
		SetQuizzes([]Quiz) error
		SaveAttempt(userID, quizID string, score, total int) (Attempt, error)
		AttemptsByUser(userID string) (map[string][]Attempt, error)
	}

	Service struct {
		repo     Repository
		seed     []Quiz
		validate *validator.Validate

		lag time.Duration
	}
)

func NewService(repo Repository, seed []Quiz, validate *validator.Validate, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		seed:     seed,
		validate: validate,
		lag:      conf.Latency,
	}
}

func (svc *Service) current() ([]Quiz, error) {
	stored, ok, err := svc.repo.GetQuizzes()
	if err != nil {
		return nil, err
	}
	if ok {
		return stored, nil
	}
	out := make([]Quiz, len(svc.seed))
	copy(out, svc.seed)
	return out, nil
}

func (svc *Service) Fetch() ([]Quiz, error) {
	core.SimulateLatency(svc.lag)
	return svc.current()
}

// Create builds a new quiz from the teacher's builder payload. Empty quizzes
// are rejected here so grading never divides by zero.
func (svc *Service) Create(nq NewQuiz) (Quiz, error) {
	core.SimulateLatency(svc.lag)

	if err := nq.Validate(svc.validate); err != nil {
		return Quiz{}, err
	}

	quizzes, err := svc.current()
	if err != nil {
		return Quiz{}, err
	}
	qz := Quiz{
		ID:        "qz-" + uuid.New().String(),
		Title:     nq.Title,
		LessonID:  nq.LessonID,
		Questions: make([]Question, 0, len(nq.Questions)),
	}
	for _, q := range nq.Questions {
		qz.Questions = append(qz.Questions, Question{
			ID:      "q-" + uuid.New().String(),
			Text:    q.Text,
			Options: q.Options,
			Answer:  q.Answer,
			Explain: q.Explain,
		})
	}
	if err := svc.repo.SetQuizzes(append(quizzes, qz)); err != nil {
		return Quiz{}, pkgerrors.Wrap(err, "persisting quizzes")
	}
	return qz, nil
}

// Submit grades an answer vector against the quiz, strictly positional and
// exact-match, and unconditionally appends the attempt to the user's history
// (even a 0% score; there is no attempt cap).
//
// answers may be shorter than the question list: missing entries grade as
// skipped and surface as Unanswered in the result rows.
func (svc *Service) Submit(userID, quizID string, answers []int) (Summary, error) {
	core.SimulateLatency(svc.lag)

	quizzes, err := svc.current()
	if err != nil {
		return Summary{}, err
	}
	var qz *Quiz
	for i := range quizzes {
		if quizzes[i].ID == quizID {
			qz = &quizzes[i]
			break
		}
	}
	if qz == nil {
		return Summary{}, ErrNotFound
	}
	if len(qz.Questions) == 0 {
		return Summary{}, ErrEmptyQuiz
	}

	var score int
	results := make([]QuestionResult, 0, len(qz.Questions))
	for i, q := range qz.Questions {
		answer := Unanswered
		if i < len(answers) {
			answer = answers[i]
		}
		correct := answer == q.Answer
		if correct {
			score++
		}
		results = append(results, QuestionResult{
			QuestionID:    q.ID,
			Correct:       correct,
			UserAnswer:    answer,
			CorrectAnswer: q.Answer,
			Explanation:   q.Explain,
		})
	}

	if _, err := svc.repo.SaveAttempt(userID, quizID, score, len(qz.Questions)); err != nil {
		return Summary{}, pkgerrors.Wrap(err, "saving quiz attempt")
	}

	return Summary{
		Score:      score,
		Total:      len(qz.Questions),
		Percentage: Percentage(score, len(qz.Questions)),
		Results:    results,
	}, nil
}

// AttemptsByUser returns the user's full attempt history keyed by quiz ID.
// Synchronous; the UI reads it alongside already-fetched quizzes.
func (svc *Service) AttemptsByUser(userID string) (map[string][]Attempt, error) {
	return svc.repo.AttemptsByUser(userID)
}
