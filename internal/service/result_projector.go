package service

import (
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/model"
)

// ResultProjector builds role-appropriate read-only views of tests and
// attempts. The answer key is visible to staff always, and to students only
// once their attempt is completed; it never appears in a student's plain
// test view. Total over the {student, teacher, admin} role set.
type ResultProjector interface {
	ProjectTest(test *model.Test, role string) dto.TestResponseDTO
	ProjectAttempt(test *model.Test, attempt *model.Attempt, role string) []dto.QuestionReviewDTO
}

type resultProjector struct{}

func NewResultProjector() ResultProjector {
	return resultProjector{}
}

func (resultProjector) ProjectTest(test *model.Test, role string) dto.TestResponseDTO {
	includeKey := model.IsStaff(role)

	questions := make([]dto.QuestionViewDTO, len(test.Questions))
	for i, q := range test.Questions {
		view := dto.QuestionViewDTO{
			QuestionID: q.OrderInTest,
			Text:       q.Text,
			Options:    q.Options,
		}
		if includeKey {
			correct := q.CorrectOption
			view.CorrectOption = &correct
		}
		questions[i] = view
	}

	return dto.TestResponseDTO{
		ID:           test.ID,
		Title:        test.Title,
		Description:  test.Description,
		StartTime:    test.StartTime,
		EndTime:      test.EndTime,
		ExamDuration: test.ExamDuration,
		Questions:    questions,
		CreatedAt:    test.CreatedAt,
	}
}

func (resultProjector) ProjectAttempt(test *model.Test, attempt *model.Attempt, role string) []dto.QuestionReviewDTO {
	includeKey := model.IsStaff(role) || attempt.Completed
	answers := attempt.Answers.Data()

	rows := make([]dto.QuestionReviewDTO, len(test.Questions))
	for i, q := range test.Questions {
		row := dto.QuestionReviewDTO{
			QuestionID: q.OrderInTest,
			Text:       q.Text,
			Options:    q.Options,
		}
		if includeKey {
			correct := q.CorrectOption
			row.CorrectOption = &correct
		}
		if selected, ok := answers[q.OrderInTest]; ok {
			s := selected
			row.StudentAnswer = &s
		}
		rows[i] = row
	}
	return rows
}
