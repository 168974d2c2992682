package user

import (
	"net/http"
	"strconv"

	"github.com/examhive/examhive/internal/controller/middleware"
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	lifecycle service.AttemptLifecycleService
}

func NewAttemptController(lifecycle service.AttemptLifecycleService) *AttemptController {
	return &AttemptController{lifecycle: lifecycle}
}

// StartAttempt godoc
// @Summary (Student) Start an attempt for a test
// @Description Admits the student into the test if its window is open and no attempt exists yet. At most one attempt per (student, test).
// @Tags Student - Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 201 {object} dto.StartAttemptResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Window closed or invalid Test ID"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already started"
// @Security BearerAuth
// @Router /tests/{test_id}/attempts/start [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	resp, err := c.lifecycle.Start(identity.UserID, uint(testID))
	if err != nil {
		log.Warn().Err(err).Uint("studentID", identity.UserID).Uint64("testID", testID).Msg("StartAttempt failed")
		writeError(ctx, err, "Failed to start attempt")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitAttempt godoc
// @Summary (Student) Submit answers for an in-progress attempt
// @Description Validates and scores the submission, then completes the attempt exactly once. The deadline is the attempt's own start time plus the test's exam duration.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param submission body dto.SubmitAttemptDTO true "Answer list; selected_option may be null to skip a question"
// @Success 200 {object} dto.SubmitAttemptResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Deadline exceeded or malformed submission"
// @Failure 404 {object} dto.ErrorResponse "Attempt not started or test missing"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Security BearerAuth
// @Router /tests/{test_id}/attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.SubmitAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Answers must be an array of {question_id, selected_option} pairs",
			Kind:    "invalid_shape",
			Details: []string{err.Error()},
		})
		return
	}

	resp, err := c.lifecycle.Submit(identity.UserID, uint(testID), req)
	if err != nil {
		log.Warn().Err(err).Uint("studentID", identity.UserID).Uint64("testID", testID).Msg("SubmitAttempt failed")
		writeError(ctx, err, "Failed to submit attempt")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetPastAttempts godoc
// @Summary (Student) List own completed attempts
// @Description Completed attempts with summaries and reviewable question breakdowns, most recent first. Attempts whose test was deleted are skipped.
// @Tags Student - Attempts
// @Produce json
// @Success 200 {array} dto.PastAttemptDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /my-attempts [get]
func (c *AttemptController) GetPastAttempts(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)

	attempts, err := c.lifecycle.PastAttempts(identity.UserID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", identity.UserID).Msg("GetPastAttempts failed")
		writeError(ctx, err, "Failed to retrieve past attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
