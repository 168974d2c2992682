package service

import (
	"testing"
	"time"

	"github.com/examhive/examhive/internal/model"
	"gorm.io/datatypes"
)

func buildAttempt(test *model.Test, answers model.AnswerSet, completed bool) *model.Attempt {
	attempt := &model.Attempt{
		ID:        7,
		StudentID: 3,
		TestID:    test.ID,
		StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Answers:   datatypes.NewJSONType(answers),
		Completed: completed,
	}
	return attempt
}

func TestProjectTest(t *testing.T) {
	test := buildTest(1, 2)
	projector := NewResultProjector()

	t.Run("student never sees the answer key", func(t *testing.T) {
		view := projector.ProjectTest(test, model.RoleStudent)
		if len(view.Questions) != 2 {
			t.Fatalf("got %d questions, want 2", len(view.Questions))
		}
		for _, q := range view.Questions {
			if q.CorrectOption != nil {
				t.Errorf("question %d: correct option leaked to student view", q.QuestionID)
			}
		}
	})

	for _, role := range []string{model.RoleTeacher, model.RoleAdmin} {
		t.Run(role+" sees the answer key", func(t *testing.T) {
			view := projector.ProjectTest(test, role)
			for i, q := range view.Questions {
				if q.CorrectOption == nil {
					t.Fatalf("question %d: correct option missing for %s", i, role)
				}
				if *q.CorrectOption != test.Questions[i].CorrectOption {
					t.Errorf("question %d: correct option = %d, want %d", i, *q.CorrectOption, test.Questions[i].CorrectOption)
				}
			}
		})
	}
}

func TestProjectAttempt(t *testing.T) {
	test := buildTest(1, 2)
	projector := NewResultProjector()

	t.Run("student view of in-progress attempt hides the key", func(t *testing.T) {
		attempt := buildAttempt(test, model.AnswerSet{0: 1}, false)
		rows := projector.ProjectAttempt(test, attempt, model.RoleStudent)
		for _, row := range rows {
			if row.CorrectOption != nil {
				t.Errorf("question %d: correct option leaked pre-submission", row.QuestionID)
			}
		}
	})

	t.Run("student view of completed attempt includes the key", func(t *testing.T) {
		attempt := buildAttempt(test, model.AnswerSet{0: 1}, true)
		rows := projector.ProjectAttempt(test, attempt, model.RoleStudent)
		for _, row := range rows {
			if row.CorrectOption == nil {
				t.Errorf("question %d: correct option missing on completed attempt", row.QuestionID)
			}
		}
	})

	t.Run("teacher view of in-progress attempt includes the key", func(t *testing.T) {
		attempt := buildAttempt(test, model.AnswerSet{}, false)
		rows := projector.ProjectAttempt(test, attempt, model.RoleTeacher)
		for _, row := range rows {
			if row.CorrectOption == nil {
				t.Errorf("question %d: correct option missing for teacher", row.QuestionID)
			}
		}
	})

	t.Run("student answers annotated regardless of role", func(t *testing.T) {
		attempt := buildAttempt(test, model.AnswerSet{0: 3}, true)
		for _, role := range []string{model.RoleStudent, model.RoleTeacher, model.RoleAdmin} {
			rows := projector.ProjectAttempt(test, attempt, role)
			if rows[0].StudentAnswer == nil || *rows[0].StudentAnswer != 3 {
				t.Errorf("role %s: question 0 student answer = %v, want 3", role, rows[0].StudentAnswer)
			}
			if rows[1].StudentAnswer != nil {
				t.Errorf("role %s: question 1 student answer = %v, want nil", role, *rows[1].StudentAnswer)
			}
		}
	})
}
