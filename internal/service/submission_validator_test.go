package service

import (
	"testing"

	"github.com/examhive/examhive/internal/apperr"
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/model"
)

func intPtr(v int) *int { return &v }

func TestValidateAnswers(t *testing.T) {
	test := buildTest(1, 2) // 2 questions, 4 options each

	tests := []struct {
		name     string
		raw      []dto.AnswerInput
		want     model.AnswerSet
		wantKind apperr.Kind
	}{
		{
			name: "valid full submission",
			raw: []dto.AnswerInput{
				{QuestionID: 0, SelectedOption: intPtr(1)},
				{QuestionID: 1, SelectedOption: intPtr(0)},
			},
			want: model.AnswerSet{0: 1, 1: 0},
		},
		{
			name: "nil selected option is a skip",
			raw:  []dto.AnswerInput{{QuestionID: 0, SelectedOption: nil}},
			want: model.AnswerSet{},
		},
		{
			name: "empty submission",
			raw:  []dto.AnswerInput{},
			want: model.AnswerSet{},
		},
		{
			name:     "nil answers",
			raw:      nil,
			wantKind: apperr.KindInvalidShape,
		},
		{
			name:     "negative question id",
			raw:      []dto.AnswerInput{{QuestionID: -1, SelectedOption: intPtr(0)}},
			wantKind: apperr.KindInvalidQuestionID,
		},
		{
			name:     "question id beyond range",
			raw:      []dto.AnswerInput{{QuestionID: 2, SelectedOption: intPtr(0)}},
			wantKind: apperr.KindInvalidQuestionID,
		},
		{
			name: "duplicate question id",
			raw: []dto.AnswerInput{
				{QuestionID: 0, SelectedOption: intPtr(1)},
				{QuestionID: 0, SelectedOption: intPtr(2)},
			},
			wantKind: apperr.KindDuplicateAnswer,
		},
		{
			name:     "duplicate counts even when both are skips",
			raw:      []dto.AnswerInput{{QuestionID: 1}, {QuestionID: 1}},
			wantKind: apperr.KindDuplicateAnswer,
		},
		{
			name:     "negative option",
			raw:      []dto.AnswerInput{{QuestionID: 0, SelectedOption: intPtr(-1)}},
			wantKind: apperr.KindInvalidOption,
		},
		{
			name:     "option beyond range",
			raw:      []dto.AnswerInput{{QuestionID: 0, SelectedOption: intPtr(4)}},
			wantKind: apperr.KindInvalidOption,
		},
	}

	validator := NewSubmissionValidator()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := validator.ValidateAnswers(tc.raw, test)
			if tc.wantKind != "" {
				kind, ok := apperr.KindOf(err)
				if !ok {
					t.Fatalf("ValidateAnswers() error = %v, want kind %s", err, tc.wantKind)
				}
				if kind != tc.wantKind {
					t.Errorf("ValidateAnswers() kind = %s, want %s", kind, tc.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateAnswers() unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("ValidateAnswers() = %v, want %v", got, tc.want)
			}
			for id, sel := range tc.want {
				if got[id] != sel {
					t.Errorf("answer[%d] = %d, want %d", id, got[id], sel)
				}
			}
		})
	}
}
