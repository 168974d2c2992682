package service

import (
	"github.com/examhive/examhive/internal/model"
)

// Fixed marking scheme: +4 per correct answer, -1 per incorrect answer,
// 0 for unattempted questions. No partial credit.
const (
	MarksPerCorrect     = 4
	PenaltyPerIncorrect = 1
)

// ScoringEngine computes per-question and aggregate results from a validated
// answer set. Pure and deterministic: the same (test, answers) pair always
// yields the same summary.
type ScoringEngine interface {
	ScoreAttempt(test *model.Test, answers model.AnswerSet) model.AttemptSummary
}

type scoringEngine struct{}

func NewScoringEngine() ScoringEngine {
	return scoringEngine{}
}

func (scoringEngine) ScoreAttempt(test *model.Test, answers model.AnswerSet) model.AttemptSummary {
	summary := model.AttemptSummary{
		TotalQuestions: len(test.Questions),
		TotalMarks:     MarksPerCorrect * len(test.Questions),
	}

	for _, q := range test.Questions {
		selected, ok := answers[q.OrderInTest]
		if !ok {
			summary.UnattemptedQuestions++
			continue
		}
		summary.AttemptedQuestions++
		if selected == q.CorrectOption {
			summary.CorrectAnswers++
			summary.Score += MarksPerCorrect
		} else {
			summary.IncorrectAnswers++
			summary.Score -= PenaltyPerIncorrect
		}
	}
	return summary
}
