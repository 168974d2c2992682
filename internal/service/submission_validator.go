package service

import (
	"github.com/examhive/examhive/internal/apperr"
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/model"
)

// SubmissionValidator checks a raw answer payload against a test's question
// structure before any scoring runs. It performs no scoring and has no side
// effects; its output is safe ScoringEngine input.
type SubmissionValidator interface {
	ValidateAnswers(raw []dto.AnswerInput, test *model.Test) (model.AnswerSet, error)
}

type submissionValidator struct{}

func NewSubmissionValidator() SubmissionValidator {
	return submissionValidator{}
}

func (submissionValidator) ValidateAnswers(raw []dto.AnswerInput, test *model.Test) (model.AnswerSet, error) {
	if raw == nil {
		return nil, apperr.New(apperr.KindInvalidShape, "answers must be an array")
	}

	answers := make(model.AnswerSet, len(raw))
	seen := make(map[int]bool, len(raw))
	for _, in := range raw {
		if in.QuestionID < 0 || in.QuestionID >= len(test.Questions) {
			return nil, apperr.New(apperr.KindInvalidQuestionID, "invalid questionId: %d", in.QuestionID)
		}
		if seen[in.QuestionID] {
			return nil, apperr.New(apperr.KindDuplicateAnswer, "duplicate answer for question %d", in.QuestionID)
		}
		seen[in.QuestionID] = true

		// A nil selected option is a deliberate skip.
		if in.SelectedOption == nil {
			continue
		}
		selected := *in.SelectedOption
		if selected < 0 || selected >= len(test.Questions[in.QuestionID].Options) {
			return nil, apperr.New(apperr.KindInvalidOption, "invalid option for question %d", in.QuestionID)
		}
		answers[in.QuestionID] = selected
	}
	return answers, nil
}
