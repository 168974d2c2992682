package dto

import "time"

// QuestionCreateDTO is used within TestCreateDTO and TestUpdateDTO.
// Questions are stored in the order given; their position is the questionId
// students answer against.
type QuestionCreateDTO struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption int      `json:"correct_option" binding:"min=0"`
}

// TestCreateDTO is for teachers/admins to create a new test with its full
// question set and attempt window.
type TestCreateDTO struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description,omitempty"`
	StartTime    time.Time           `json:"start_time" binding:"required"`
	EndTime      time.Time           `json:"end_time" binding:"required"`
	ExamDuration int                 `json:"exam_duration" binding:"required,gt=0"` // minutes
	Questions    []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestUpdateDTO carries partial updates; nil fields are left untouched.
// Updates are only accepted before the test's start time.
type TestUpdateDTO struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	ExamDuration *int                `json:"exam_duration"`
	Questions    []QuestionCreateDTO `json:"questions" binding:"omitempty,min=1,dive"`
}

// QuestionViewDTO is a role-projected question row. CorrectOption is omitted
// entirely for student views so the answer key never leaks.
type QuestionViewDTO struct {
	QuestionID    int      `json:"question_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option,omitempty"`
}

// TestResponseDTO is the full test view, projected per role.
type TestResponseDTO struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	ExamDuration int               `json:"exam_duration"`
	Questions    []QuestionViewDTO `json:"questions,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// TestSummaryDTO is used for the staff listing of all tests.
type TestSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ExamDuration  int       `json:"exam_duration"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// TestResultRowDTO is one student's result in the staff results listing for
// a test, sorted best score first.
type TestResultRowDTO struct {
	StudentID   uint       `json:"student_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Score       int        `json:"score"`
	AttemptedAt *time.Time `json:"attempted_at,omitempty"`
}
