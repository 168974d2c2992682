package service

import (
	"fmt"
	"testing"

	"github.com/examhive/examhive/internal/model"
)

func buildTest(correct ...int) *model.Test {
	questions := make([]model.Question, len(correct))
	for i, c := range correct {
		questions[i] = model.Question{
			OrderInTest:   i,
			Text:          fmt.Sprintf("question %d", i),
			Options:       []string{"A", "B", "C", "D"},
			CorrectOption: c,
		}
	}
	return &model.Test{ID: 1, Title: "Sample Test", ExamDuration: 30, Questions: questions}
}

func TestScoreAttempt(t *testing.T) {
	tests := []struct {
		name    string
		correct []int
		answers model.AnswerSet
		want    model.AttemptSummary
	}{
		{
			name:    "one correct one incorrect",
			correct: []int{1, 2},
			answers: model.AnswerSet{0: 1, 1: 0},
			want: model.AttemptSummary{
				Score: 3, TotalMarks: 8, TotalQuestions: 2,
				AttemptedQuestions: 2, CorrectAnswers: 1, IncorrectAnswers: 1, UnattemptedQuestions: 0,
			},
		},
		{
			name:    "all skipped",
			correct: []int{1, 2},
			answers: model.AnswerSet{},
			want: model.AttemptSummary{
				Score: 0, TotalMarks: 8, TotalQuestions: 2,
				AttemptedQuestions: 0, CorrectAnswers: 0, IncorrectAnswers: 0, UnattemptedQuestions: 2,
			},
		},
		{
			name:    "all correct",
			correct: []int{0, 1, 2, 3},
			answers: model.AnswerSet{0: 0, 1: 1, 2: 2, 3: 3},
			want: model.AttemptSummary{
				Score: 16, TotalMarks: 16, TotalQuestions: 4,
				AttemptedQuestions: 4, CorrectAnswers: 4, IncorrectAnswers: 0, UnattemptedQuestions: 0,
			},
		},
		{
			name:    "negative aggregate score",
			correct: []int{1, 1, 1},
			answers: model.AnswerSet{0: 0, 1: 2, 2: 3},
			want: model.AttemptSummary{
				Score: -3, TotalMarks: 12, TotalQuestions: 3,
				AttemptedQuestions: 3, CorrectAnswers: 0, IncorrectAnswers: 3, UnattemptedQuestions: 0,
			},
		},
		{
			name:    "mixed with skips",
			correct: []int{1, 2, 0, 3},
			answers: model.AnswerSet{0: 1, 2: 1},
			want: model.AttemptSummary{
				Score: 3, TotalMarks: 16, TotalQuestions: 4,
				AttemptedQuestions: 2, CorrectAnswers: 1, IncorrectAnswers: 1, UnattemptedQuestions: 2,
			},
		},
		{
			name:    "empty test",
			correct: nil,
			answers: model.AnswerSet{},
			want:    model.AttemptSummary{},
		},
	}

	engine := NewScoringEngine()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.ScoreAttempt(buildTest(tc.correct...), tc.answers)
			if got != tc.want {
				t.Errorf("ScoreAttempt() = %+v, want %+v", got, tc.want)
			}

			if got.AttemptedQuestions+got.UnattemptedQuestions != got.TotalQuestions {
				t.Errorf("attempted (%d) + unattempted (%d) != total (%d)",
					got.AttemptedQuestions, got.UnattemptedQuestions, got.TotalQuestions)
			}
			if want := got.CorrectAnswers*MarksPerCorrect - got.IncorrectAnswers*PenaltyPerIncorrect; got.Score != want {
				t.Errorf("score %d does not equal sum of contributions %d", got.Score, want)
			}
		})
	}
}

func TestScoreAttemptDeterministic(t *testing.T) {
	test := buildTest(1, 2, 3, 0, 1)
	answers := model.AnswerSet{0: 1, 1: 0, 3: 0}

	engine := NewScoringEngine()
	first := engine.ScoreAttempt(test, answers)
	for i := 0; i < 10; i++ {
		if got := engine.ScoreAttempt(test, answers); got != first {
			t.Fatalf("run %d: ScoreAttempt() = %+v, want %+v", i, got, first)
		}
	}
}
