package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/examhive/examhive/internal/apperr"
	"github.com/examhive/examhive/internal/clock"
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/model"
	"github.com/examhive/examhive/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestService covers test management (teacher/admin) and role-aware test
// reads for students. Test mutation is locked once the test's window opens,
// so the question set an attempt was scored against can never change
// underneath it.
type TestService interface {
	CreateTest(creatorID uint, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	UpdateTest(actorID uint, role string, testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error)
	DeleteTest(actorID uint, role string, testID uint) error
	GetTest(testID uint, role string) (*dto.TestResponseDTO, error)
	GetTodayTests(role string) ([]dto.TestResponseDTO, error)
	GetAllTests() ([]dto.TestSummaryDTO, error)
	GetTestResults(testID uint) ([]dto.TestResultRowDTO, error)
}

type testService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	projector   ResultProjector
	clock       clock.Clock
}

func NewTestService(testRepo repository.TestRepository, attemptRepo repository.AttemptRepository, projector ResultProjector, clk clock.Clock) TestService {
	return &testService{testRepo: testRepo, attemptRepo: attemptRepo, projector: projector, clock: clk}
}

func validateQuestions(questions []dto.QuestionCreateDTO) ([]model.Question, error) {
	models := make([]model.Question, len(questions))
	for i, q := range questions {
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d must have at least 2 options", i)
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return nil, fmt.Errorf("question %d has correct_option %d outside its option range", i, q.CorrectOption)
		}
		models[i] = model.Question{
			OrderInTest:   i,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		}
	}
	return models, nil
}

func (s *testService) CreateTest(creatorID uint, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("start time must be before end time")
	}
	if req.StartTime.Before(s.clock.Now()) {
		return nil, fmt.Errorf("start time cannot be in the past")
	}

	questions, err := validateQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	test := model.Test{
		Title:        req.Title,
		Description:  req.Description,
		CreatedBy:    creatorID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ExamDuration: req.ExamDuration,
		Questions:    questions,
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	resp := s.projector.ProjectTest(&test, model.RoleAdmin)
	return &resp, nil
}

func (s *testService) UpdateTest(actorID uint, role string, testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no test found with that ID")
		}
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	if test.CreatedBy != actorID && role != model.RoleAdmin {
		return nil, apperr.New(apperr.KindForbidden, "only the teacher who created this test or admins may update it")
	}
	if !s.clock.Now().Before(test.StartTime) {
		return nil, fmt.Errorf("cannot update a test that has already started")
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.ExamDuration != nil {
		if *req.ExamDuration <= 0 {
			return nil, fmt.Errorf("exam duration must be positive")
		}
		test.ExamDuration = *req.ExamDuration
	}
	if req.Questions != nil {
		questions, err := validateQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		for i := range questions {
			questions[i].TestID = test.ID
		}
		test.Questions = questions
	}

	if err := s.testRepo.Update(test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to update test")
		return nil, fmt.Errorf("database error updating test: %w", err)
	}

	resp := s.projector.ProjectTest(test, model.RoleAdmin)
	return &resp, nil
}

func (s *testService) DeleteTest(actorID uint, role string, testID uint) error {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "no test found with that ID")
		}
		return fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	if test.CreatedBy != actorID && role != model.RoleAdmin {
		return apperr.New(apperr.KindForbidden, "only the teacher who created this test or admins may delete it")
	}

	if err := s.testRepo.Delete(testID); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to delete test")
		return fmt.Errorf("database error deleting test: %w", err)
	}
	return nil
}

func (s *testService) GetTest(testID uint, role string) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no test found with that ID")
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to get test details from repository")
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	resp := s.projector.ProjectTest(test, role)
	return &resp, nil
}

// GetTodayTests lists tests whose window opens today, projected per role so
// students never see the answer key.
func (s *testService) GetTodayTests(role string) ([]dto.TestResponseDTO, error) {
	now := s.clock.Now()
	yy, mm, dd := now.Date()
	from := time.Date(yy, mm, dd, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)

	tests, err := s.testRepo.FindStartingBetween(from, to)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get today's tests from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestResponseDTO, len(tests))
	for i := range tests {
		dtos[i] = s.projector.ProjectTest(&tests[i], role)
	}
	return dtos, nil
}

func (s *testService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	var dtos []dto.TestSummaryDTO
	for _, twc := range testsWithCount {
		var summary dto.TestSummaryDTO
		copier.Copy(&summary, &twc.Test)
		summary.QuestionCount = twc.QuestionCount
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

// GetTestResults lists every student's completed attempt for a test,
// best score first.
func (s *testService) GetTestResults(testID uint) ([]dto.TestResultRowDTO, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "no test found with that ID")
		}
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	attempts, err := s.attemptRepo.FindCompletedByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to get attempts for test results")
		return nil, fmt.Errorf("error fetching results for test %d: %w", testID, err)
	}

	rows := make([]dto.TestResultRowDTO, len(attempts))
	for i, a := range attempts {
		rows[i] = dto.TestResultRowDTO{
			StudentID:   a.StudentID,
			Name:        a.Student.Name,
			Email:       a.Student.Email,
			Score:       a.Score,
			AttemptedAt: a.AttemptedAt,
		}
	}
	return rows, nil
}
