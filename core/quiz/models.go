package quiz

import (
	"math"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/flipspace/flipspace/core"
)

// Unanswered marks a question the user skipped in an attempt's result row.
const Unanswered = -1

type (
	// Quiz is immutable once created.
	Quiz struct {
		ID        string     `json:"id"`
		Title     string     `json:"title"`
		LessonID  string     `json:"lessonId"` // loose reference to a Resource, not enforced
		Questions []Question `json:"questions"`
	}

	Question struct {
		ID      string   `json:"id"`
		Text    string   `json:"text"`
		Options []string `json:"options"`
		Answer  int      `json:"answer"` // index into Options
		Explain string   `json:"explain"`
	}

	// Attempt is an append-only grading record; Total is snapshotted from
	// the question count at submission time.
	Attempt struct {
		Score      int       `json:"score"`
		Total      int       `json:"total"`
		Percentage int       `json:"percentage"`
		Timestamp  time.Time `json:"timestamp"`
	}

	// QuestionResult is one row of the per-question review breakdown.
	QuestionResult struct {
		QuestionID    string `json:"questionId"`
		Correct       bool   `json:"correct"`
		UserAnswer    int    `json:"userAnswer"` // Unanswered if skipped
		CorrectAnswer int    `json:"correctAnswer"`
		Explanation   string `json:"explanation"`
	}

	// Summary is the full grading outcome returned to the submitter.
	Summary struct {
		Score      int              `json:"score"`
		Total      int              `json:"total"`
		Percentage int              `json:"percentage"`
		Results    []QuestionResult `json:"results"`
	}
)

// Percentage rounds score/total to a whole percent, half away from zero.
// Callers must guard total > 0.
func Percentage(score, total int) int {
	return int(math.Round(float64(score) / float64(total) * 100))
}

// BestScore derives the best percentage over an attempt history; it is
// always computed on read, never cached.
func BestScore(attempts []Attempt) (int, bool) {
	if len(attempts) == 0 {
		return 0, false
	}
	best := attempts[0].Percentage
	for _, a := range attempts[1:] {
		if a.Percentage > best {
			best = a.Percentage
		}
	}
	return best, true
}

// NewQuiz contains information needed to build a new Quiz.
type NewQuiz struct {
	Title     string        `json:"title" validate:"required"`
	LessonID  string        `json:"lessonId"`
	Questions []NewQuestion `json:"questions" validate:"required,min=1,dive"`
}

type NewQuestion struct {
	Text    string   `json:"text" validate:"required"`
	Options []string `json:"options" validate:"required,min=2,dive,required"`
	Answer  int      `json:"answer" validate:"min=0"`
	Explain string   `json:"explain"`
}

func (nq *NewQuiz) Validate(validate *validator.Validate) error {
	nq.Title = core.CleanString(nq.Title)
	if err := validate.Struct(nq); err != nil {
		return err
	}
	// answer must index into options
	for i, q := range nq.Questions {
		if q.Answer >= len(q.Options) {
			return core.NewInvalidInputError("answer", "answer index out of range for question "+strconv.Itoa(i+1))
		}
	}
	return nil
}
