package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerSet maps questionId (order_in_test) to the selected option index.
// Skipped questions are simply absent.
type AnswerSet map[int]int

// AttemptSummary is the aggregate scoring record of a completed attempt.
type AttemptSummary struct {
	Score                int `json:"score"`
	TotalMarks           int `json:"total_marks"`
	TotalQuestions       int `json:"total_questions"`
	AttemptedQuestions   int `json:"attempted_questions"`
	CorrectAnswers       int `json:"correct_answers"`
	IncorrectAnswers     int `json:"incorrect_answers"`
	UnattemptedQuestions int `json:"unattempted_questions"`
}

// Attempt is one student's exam session for one test. The composite unique
// index enforces at most one attempt per (student, test) at the database
// level; Completed flips false->true exactly once via a conditional update.
type Attempt struct {
	ID             uint                          `gorm:"primarykey" json:"id"`
	StudentID      uint                          `json:"student_id" gorm:"not null;uniqueIndex:idx_attempts_student_test"`
	Student        User                          `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	TestID         uint                          `json:"test_id" gorm:"not null;uniqueIndex:idx_attempts_student_test"`
	Test           Test                          `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StartedAt      time.Time                     `json:"started_at" gorm:"not null"`
	Answers        datatypes.JSONType[AnswerSet] `json:"answers" gorm:"type:jsonb"`
	Completed      bool                          `json:"completed" gorm:"not null;default:false"`
	AttemptedAt    *time.Time                    `json:"attempted_at,omitempty"`
	AttemptSummary `gorm:"embedded" json:"summary"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
