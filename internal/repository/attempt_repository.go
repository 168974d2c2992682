package repository

import (
	"errors"
	"time"

	"github.com/examhive/examhive/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store-level conflict signals for the two guarded attempt transitions.
// The lifecycle service maps these onto its error taxonomy; any other error
// coming out of this repository is an infrastructure fault.
var (
	ErrAttemptExists    = errors.New("attempt already exists for this student and test")
	ErrAttemptCompleted = errors.New("attempt is already completed")
)

type AttemptRepository interface {
	FindOne(studentID, testID uint) (*model.Attempt, error)
	CreateIfAbsent(attempt *model.Attempt) error
	CompleteIfNotCompleted(attemptID uint, answers model.AnswerSet, attemptedAt time.Time, summary model.AttemptSummary) error
	FindCompletedByStudent(studentID uint) ([]model.Attempt, error)
	FindCompletedByTest(testID uint) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindOne(studentID, testID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("student_id = ? AND test_id = ?", studentID, testID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// CreateIfAbsent inserts the attempt, relying on the unique
// (student_id, test_id) index to reject concurrent duplicate starts. The
// duplicate-key translation requires TranslateError on the gorm config.
func (r *attemptRepository) CreateIfAbsent(attempt *model.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAttemptExists
		}
		return err
	}
	return nil
}

// CompleteIfNotCompleted performs the completed:false->true transition as a
// single conditional update. Exactly one concurrent caller can win; losers
// get ErrAttemptCompleted.
func (r *attemptRepository) CompleteIfNotCompleted(attemptID uint, answers model.AnswerSet, attemptedAt time.Time, summary model.AttemptSummary) error {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND completed = ?", attemptID, false).
		Updates(map[string]interface{}{
			"answers":               datatypes.NewJSONType(answers),
			"completed":             true,
			"attempted_at":          attemptedAt,
			"score":                 summary.Score,
			"total_marks":           summary.TotalMarks,
			"total_questions":       summary.TotalQuestions,
			"attempted_questions":   summary.AttemptedQuestions,
			"correct_answers":       summary.CorrectAnswers,
			"incorrect_answers":     summary.IncorrectAnswers,
			"unattempted_questions": summary.UnattemptedQuestions,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAttemptCompleted
	}
	return nil
}

func (r *attemptRepository) FindCompletedByStudent(studentID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Test.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_test ASC")
		}).
		Preload("Test").
		Where("student_id = ? AND completed = ?", studentID, true).
		Order("attempted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindCompletedByTest(testID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.
		Preload("Student").
		Where("test_id = ? AND completed = ?", testID, true).
		Order("score DESC").
		Find(&attempts).Error
	return attempts, err
}
