package quiz_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/quiz"
	"github.com/flipspace/flipspace/storage"
	"github.com/flipspace/flipspace/storage/kv/memkv"
)

func seedQuizzes() []quiz.Quiz {
	return []quiz.Quiz{
		{
			ID:       "quiz-101",
			Title:    "Algebra Basics Check",
			LessonID: "r1",
			Questions: []quiz.Question{
				{ID: "q1", Text: "2 + 2?", Options: []string{"4", "5"}, Answer: 0},
				{ID: "q2", Text: "3 x 3?", Options: []string{"6", "9"}, Answer: 1},
				{ID: "q3", Text: "10 / 2?", Options: []string{"2", "4", "5"}, Answer: 2, Explain: "Halving."},
			},
		},
		{ID: "quiz-void", Title: "Draft", Questions: []quiz.Question{}},
	}
}

func setup(t *testing.T) (*quiz.Service, *storage.Store) {
	t.Helper()
	conf := core.NewTestConfig()
	validate, _ := core.NewValidator()
	store := storage.New(memkv.Open())
	return quiz.NewService(store, seedQuizzes(), validate, conf), store
}

func TestService_Submit_grading(t *testing.T) {
	tests := []struct {
		name           string
		answers        []int
		wantScore      int
		wantPercentage int
	}{
		{name: "all correct", answers: []int{0, 1, 2}, wantScore: 3, wantPercentage: 100},
		{name: "all wrong", answers: []int{1, 0, 0}, wantScore: 0, wantPercentage: 0},
		{name: "two of three", answers: []int{0, 1, 0}, wantScore: 2, wantPercentage: 67},
		{name: "no answers", answers: []int{}, wantScore: 0, wantPercentage: 0},
		{name: "short answer vector", answers: []int{0}, wantScore: 1, wantPercentage: 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setup(t)

			sum, err := svc.Submit("u3", "quiz-101", tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, sum.Score)
			assert.Equal(t, 3, sum.Total)
			assert.Equal(t, tt.wantPercentage, sum.Percentage)
			assert.Len(t, sum.Results, 3)
		})
	}
}

func TestService_Submit_results(t *testing.T) {
	svc, _ := setup(t)

	sum, err := svc.Submit("u3", "quiz-101", []int{0, 1, 0})
	require.NoError(t, err)

	require.Len(t, sum.Results, 3)
	assert.True(t, sum.Results[0].Correct)
	assert.True(t, sum.Results[1].Correct)
	assert.False(t, sum.Results[2].Correct)
	assert.Equal(t, "q3", sum.Results[2].QuestionID)
	assert.Equal(t, 0, sum.Results[2].UserAnswer)
	assert.Equal(t, 2, sum.Results[2].CorrectAnswer)
	assert.Equal(t, "Halving.", sum.Results[2].Explanation)
}

func TestService_Submit_skippedQuestions(t *testing.T) {
	svc, _ := setup(t)

	sum, err := svc.Submit("u3", "quiz-101", []int{0})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Results[0].UserAnswer)
	assert.Equal(t, quiz.Unanswered, sum.Results[1].UserAnswer)
	assert.Equal(t, quiz.Unanswered, sum.Results[2].UserAnswer)
}

func TestService_Submit_errors(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Submit("u3", "nope", []int{0})
	assert.Equal(t, quiz.ErrNotFound, err)

	_, err = svc.Submit("u3", "quiz-void", []int{0})
	assert.Equal(t, quiz.ErrEmptyQuiz, err)
}

func TestService_Submit_history(t *testing.T) {
	svc, _ := setup(t)

	for _, answers := range [][]int{
		{1, 0, 0}, // 0%
		{0, 1, 2}, // 100%
		{0, 1, 0}, // 67%
	} {
		_, err := svc.Submit("u3", "quiz-101", answers)
		require.NoError(t, err)
	}

	attempts, err := svc.AttemptsByUser("u3")
	require.NoError(t, err)
	history := attempts["quiz-101"]
	require.Len(t, history, 3)
	assert.Equal(t, 0, history[0].Percentage)
	assert.Equal(t, 100, history[1].Percentage)
	assert.Equal(t, 67, history[2].Percentage)
	assert.Equal(t, 3, history[2].Total)
	assert.False(t, history[2].Timestamp.IsZero())

	best, ok := quiz.BestScore(history)
	assert.True(t, ok)
	assert.Equal(t, 100, best)

	// other users are untouched
	other, err := svc.AttemptsByUser("u4")
	require.NoError(t, err)
	assert.Empty(t, other["quiz-101"])
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)

	qz, err := svc.Create(quiz.NewQuiz{
		Title:    "  Photosynthesis Recap ",
		LessonID: "r2",
		Questions: []quiz.NewQuestion{
			{Text: "Inputs?", Options: []string{"CO2 and water", "Oxygen"}, Answer: 0, Explain: "Light reactions."},
			{Text: "Byproduct?", Options: []string{"Oxygen", "Methane"}, Answer: 0},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qz.ID, "qz-"))
	assert.Equal(t, "Photosynthesis Recap", qz.Title)
	require.Len(t, qz.Questions, 2)
	assert.True(t, strings.HasPrefix(qz.Questions[0].ID, "q-"))

	quizzes, err := svc.Fetch()
	require.NoError(t, err)
	assert.Len(t, quizzes, len(seedQuizzes())+1)

	// the fresh quiz is immediately gradable
	sum, err := svc.Submit("u3", qz.ID, []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Score)
	assert.Equal(t, 50, sum.Percentage)
}

func TestService_Create_validation(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name string
		nq   quiz.NewQuiz
	}{
		{name: "no title", nq: quiz.NewQuiz{
			Questions: []quiz.NewQuestion{{Text: "?", Options: []string{"a", "b"}, Answer: 0}},
		}},
		{name: "no questions", nq: quiz.NewQuiz{Title: "Empty"}},
		{name: "single option", nq: quiz.NewQuiz{
			Title:     "One option",
			Questions: []quiz.NewQuestion{{Text: "?", Options: []string{"a"}, Answer: 0}},
		}},
		{name: "answer out of range", nq: quiz.NewQuiz{
			Title:     "Bad answer",
			Questions: []quiz.NewQuestion{{Text: "?", Options: []string{"a", "b"}, Answer: 2}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.nq)
			assert.Error(t, err)
		})
	}

	quizzes, err := svc.Fetch()
	require.NoError(t, err)
	assert.Len(t, quizzes, len(seedQuizzes()))
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 8, 13}, // half rounds away from zero
		{1, 6, 17},
	}
	for _, tt := range tests {
		if got := quiz.Percentage(tt.score, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestBestScore(t *testing.T) {
	if _, ok := quiz.BestScore(nil); ok {
		t.Error("BestScore(nil) ok = true, want false")
	}

	best, ok := quiz.BestScore([]quiz.Attempt{
		{Percentage: 40},
		{Percentage: 90},
		{Percentage: 60},
	})
	if !ok || best != 90 {
		t.Errorf("BestScore() = %d, %t, want 90, true", best, ok)
	}
}
