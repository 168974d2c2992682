package dto

import "time"

// AnswerInput is one (questionId, selectedOption) pair of a submission.
// A nil SelectedOption is a deliberate skip.
type AnswerInput struct {
	QuestionID     int  `json:"question_id"`
	SelectedOption *int `json:"selected_option"`
}

// SubmitAttemptDTO is the request body for submitting an attempt.
type SubmitAttemptDTO struct {
	Answers []AnswerInput `json:"answers"`
}

// StartAttemptResponseDTO acknowledges a started attempt.
type StartAttemptResponseDTO struct {
	AttemptID uint      `json:"attempt_id"`
	StartedAt time.Time `json:"started_at"`
}

// AttemptSummaryDTO mirrors model.AttemptSummary for responses.
type AttemptSummaryDTO struct {
	Score                int `json:"score"`
	TotalMarks           int `json:"total_marks"`
	TotalQuestions       int `json:"total_questions"`
	AttemptedQuestions   int `json:"attempted_questions"`
	CorrectAnswers       int `json:"correct_answers"`
	IncorrectAnswers     int `json:"incorrect_answers"`
	UnattemptedQuestions int `json:"unattempted_questions"`
}

// QuestionReviewDTO is a question row annotated with the student's own
// answer. CorrectOption is present only when the role may see the key.
type QuestionReviewDTO struct {
	QuestionID    int      `json:"question_id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option,omitempty"`
	StudentAnswer *int     `json:"student_answer"`
}

// SubmitAttemptResponseDTO is the terminal response of a submission: the
// computed summary plus the answer-annotated question breakdown.
type SubmitAttemptResponseDTO struct {
	Summary     AttemptSummaryDTO   `json:"summary"`
	Questions   []QuestionReviewDTO `json:"questions"`
	SubmittedAt time.Time           `json:"submitted_at"`
}

// PastAttemptDTO is one completed attempt in a student's history,
// most recent first.
type PastAttemptDTO struct {
	TestID       uint                `json:"test_id"`
	TestTitle    string              `json:"test_title"`
	Description  string              `json:"description,omitempty"`
	ExamDuration int                 `json:"exam_duration"`
	StartTime    time.Time           `json:"start_time"`
	EndTime      time.Time           `json:"end_time"`
	Summary      AttemptSummaryDTO   `json:"summary"`
	Questions    []QuestionReviewDTO `json:"questions"`
	AttemptedAt  time.Time           `json:"attempted_at"`
}
