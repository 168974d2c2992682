package repository

import (
	"time"

	"github.com/examhive/examhive/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	Create(test *model.Test) error
	Update(test *model.Test) error
	Delete(id uint) error
	FindByID(id uint) (*model.Test, error)
	FindByIDWithQuestions(id uint) (*model.Test, error)
	FindStartingBetween(from, to time.Time) ([]model.Test, error)
	FindAllWithQuestionCount() ([]TestWithQuestionCount, error)
}

type TestWithQuestionCount struct {
	model.Test
	QuestionCount int
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(test *model.Test) error {
	// GORM creates the associated questions in the same insert.
	return r.db.Create(test).Error
}

// Update replaces the test row and, when test.Questions is populated, its
// full question set. Callers only reach this before the test's start time.
func (r *testRepository) Update(test *model.Test) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if test.Questions != nil {
			if err := tx.Where("test_id = ?", test.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Save(test).Error
	})
}

func (r *testRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Test{}, id).Error
	})
}

func (r *testRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	if err := r.db.First(&test, id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindByIDWithQuestions(id uint) (*model.Test, error) {
	var test model.Test
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_test ASC")
	}).First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *testRepository) FindStartingBetween(from, to time.Time) ([]model.Test, error) {
	var tests []model.Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_test ASC")
		}).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Order("start_time ASC").
		Find(&tests).Error
	return tests, err
}

func (r *testRepository) FindAllWithQuestionCount() ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	err := r.db.Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id AND questions.deleted_at IS NULL) as question_count").
		Where("tests.deleted_at IS NULL").
		Order("tests.start_time DESC").
		Scan(&results).Error
	return results, err
}
