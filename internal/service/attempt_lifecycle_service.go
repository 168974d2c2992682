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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptLifecycleService is the attempt state machine:
// NotStarted -> InProgress (Start) -> Completed (Submit). Both transitions
// are re-verified at commit time by the attempt store's atomic primitives,
// not just at request entry.
type AttemptLifecycleService interface {
	Start(studentID, testID uint) (*dto.StartAttemptResponseDTO, error)
	Submit(studentID, testID uint, req dto.SubmitAttemptDTO) (*dto.SubmitAttemptResponseDTO, error)
	PastAttempts(studentID uint) ([]dto.PastAttemptDTO, error)
}

type attemptLifecycleService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	validator   SubmissionValidator
	scorer      ScoringEngine
	projector   ResultProjector
	clock       clock.Clock
}

func NewAttemptLifecycleService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	validator SubmissionValidator,
	scorer ScoringEngine,
	projector ResultProjector,
	clk clock.Clock,
) AttemptLifecycleService {
	return &attemptLifecycleService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		validator:   validator,
		scorer:      scorer,
		projector:   projector,
		clock:       clk,
	}
}

// Start admits a student into a test. The test's global window gates entry;
// the duplicate check is enforced by the store's unique index, so two
// concurrent starts can never both succeed.
func (s *attemptLifecycleService) Start(studentID, testID uint) (*dto.StartAttemptResponseDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "test not found")
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Start: failed to load test")
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	now := s.clock.Now()
	if now.Before(test.StartTime) || now.After(test.EndTime) {
		return nil, apperr.New(apperr.KindWindowClosed, "test is not available right now")
	}

	attempt := &model.Attempt{
		StudentID: studentID,
		TestID:    testID,
		StartedAt: now,
		Answers:   datatypes.NewJSONType(model.AnswerSet{}),
	}
	if err := s.attemptRepo.CreateIfAbsent(attempt); err != nil {
		if errors.Is(err, repository.ErrAttemptExists) {
			return nil, apperr.New(apperr.KindAlreadyStarted, "you have already started this test")
		}
		log.Error().Err(err).Uint("studentID", studentID).Uint("testID", testID).Msg("Start: failed to create attempt")
		return nil, fmt.Errorf("error creating attempt: %w", err)
	}

	log.Info().Uint("studentID", studentID).Uint("testID", testID).Uint("attemptID", attempt.ID).Msg("Attempt started")
	return &dto.StartAttemptResponseDTO{AttemptID: attempt.ID, StartedAt: attempt.StartedAt}, nil
}

// Submit validates, scores and completes an in-progress attempt. The
// deadline is derived from the attempt's own StartedAt, so each student's
// clock runs independently of the test's global end time. The terminal write
// is a compare-and-swap on the completed flag; a concurrent loser surfaces
// AlreadySubmitted and leaves the persisted attempt untouched.
func (s *attemptLifecycleService) Submit(studentID, testID uint, req dto.SubmitAttemptDTO) (*dto.SubmitAttemptResponseDTO, error) {
	attempt, err := s.attemptRepo.FindOne(studentID, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotStarted, "start the test before submitting")
		}
		log.Error().Err(err).Uint("studentID", studentID).Uint("testID", testID).Msg("Submit: failed to load attempt")
		return nil, fmt.Errorf("error fetching attempt: %w", err)
	}
	if attempt.Completed {
		return nil, apperr.New(apperr.KindAlreadySubmitted, "you have already submitted this test")
	}

	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "test not found")
		}
		log.Error().Err(err).Uint("testID", testID).Msg("Submit: failed to load test")
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}

	now := s.clock.Now()
	deadline := attempt.StartedAt.Add(time.Duration(test.ExamDuration) * time.Minute)
	if now.After(deadline) {
		return nil, apperr.New(apperr.KindDeadlineExceeded, "time is up, cannot submit")
	}

	answers, err := s.validator.ValidateAnswers(req.Answers, test)
	if err != nil {
		return nil, err
	}

	summary := s.scorer.ScoreAttempt(test, answers)

	if err := s.attemptRepo.CompleteIfNotCompleted(attempt.ID, answers, now, summary); err != nil {
		if errors.Is(err, repository.ErrAttemptCompleted) {
			return nil, apperr.New(apperr.KindAlreadySubmitted, "you have already submitted this test")
		}
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Submit: failed to complete attempt")
		return nil, fmt.Errorf("error completing attempt: %w", err)
	}

	attempt.Answers = datatypes.NewJSONType(answers)
	attempt.Completed = true
	attempt.AttemptedAt = &now
	attempt.AttemptSummary = summary

	var summaryDTO dto.AttemptSummaryDTO
	copier.Copy(&summaryDTO, &summary)

	log.Info().
		Uint("studentID", studentID).
		Uint("testID", testID).
		Int("score", summary.Score).
		Msg("Attempt submitted")

	return &dto.SubmitAttemptResponseDTO{
		Summary:     summaryDTO,
		Questions:   s.projector.ProjectAttempt(test, attempt, model.RoleStudent),
		SubmittedAt: now,
	}, nil
}

// PastAttempts lists a student's completed attempts, most recent first.
// Attempts whose test has since been deleted are skipped.
func (s *attemptLifecycleService) PastAttempts(studentID uint) ([]dto.PastAttemptDTO, error) {
	attempts, err := s.attemptRepo.FindCompletedByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("PastAttempts: failed to load attempts")
		return nil, fmt.Errorf("error fetching past attempts: %w", err)
	}

	dtos := make([]dto.PastAttemptDTO, 0, len(attempts))
	for i := range attempts {
		attempt := &attempts[i]
		if attempt.Test.ID == 0 {
			continue
		}

		var summaryDTO dto.AttemptSummaryDTO
		copier.Copy(&summaryDTO, &attempt.AttemptSummary)

		past := dto.PastAttemptDTO{
			TestID:       attempt.Test.ID,
			TestTitle:    attempt.Test.Title,
			Description:  attempt.Test.Description,
			ExamDuration: attempt.Test.ExamDuration,
			StartTime:    attempt.Test.StartTime,
			EndTime:      attempt.Test.EndTime,
			Summary:      summaryDTO,
			Questions:    s.projector.ProjectAttempt(&attempt.Test, attempt, model.RoleStudent),
		}
		if attempt.AttemptedAt != nil {
			past.AttemptedAt = *attempt.AttemptedAt
		}
		dtos = append(dtos, past)
	}
	return dtos, nil
}
