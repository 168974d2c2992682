package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/examhive/examhive/internal/apperr"
	"github.com/examhive/examhive/internal/controller/middleware"
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	testService service.TestService
}

func NewAdminTestController(testService service.TestService) *AdminTestController {
	return &AdminTestController{testService: testService}
}

func writeError(ctx *gin.Context, err error, fallback string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		ctx.JSON(ae.Status(), dto.ErrorResponse{Message: ae.Message, Kind: string(ae.Kind)})
		return
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
}

// CreateTest godoc
// @Summary (Staff) Create a new test
// @Description Creates a test with its full question set, attempt window and per-attempt duration. Every question needs at least 2 options and an in-range correct option.
// @Tags Staff - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid test definition"
// @Security BearerAuth
// @Router /staff/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)

	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateTest: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.testService.CreateTest(identity.UserID, req)
	if err != nil {
		log.Error().Err(err).Msg("CreateTest: service error")
		writeError(ctx, err, "Failed to create test")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateTest godoc
// @Summary (Staff) Update a test before it starts
// @Description Only the creating teacher or an admin may update, and only before the test's start time.
// @Tags Staff - Tests
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param test_data body dto.TestUpdateDTO true "Fields to update"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Test already started or invalid update"
// @Failure 403 {object} dto.ErrorResponse "Not the creator or an admin"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Security BearerAuth
// @Router /staff/tests/{test_id} [put]
func (c *AdminTestController) UpdateTest(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.TestUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateTest: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.testService.UpdateTest(identity.UserID, identity.Role, uint(testID), req)
	if err != nil {
		log.Warn().Err(err).Uint64("testID", testID).Msg("UpdateTest: service error")
		writeError(ctx, err, "Failed to update test")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteTest godoc
// @Summary (Staff) Delete a test
// @Description Only the creating teacher or an admin may delete. Completed attempts referencing the test disappear from student history.
// @Tags Staff - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the creator or an admin"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Security BearerAuth
// @Router /staff/tests/{test_id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	if err := c.testService.DeleteTest(identity.UserID, identity.Role, uint(testID)); err != nil {
		log.Warn().Err(err).Uint64("testID", testID).Msg("DeleteTest: service error")
		writeError(ctx, err, "Failed to delete test")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetAllTests godoc
// @Summary (Staff) List all tests
// @Tags Staff - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /staff/tests [get]
func (c *AdminTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.testService.GetAllTests()
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestResults godoc
// @Summary (Staff) List all student results for a test
// @Description Completed attempts for the test with student identity and score, best score first.
// @Tags Staff - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.TestResultRowDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Security BearerAuth
// @Router /staff/tests/{test_id}/results [get]
func (c *AdminTestController) GetTestResults(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	results, err := c.testService.GetTestResults(uint(testID))
	if err != nil {
		log.Warn().Err(err).Uint64("testID", testID).Msg("GetTestResults: service error")
		writeError(ctx, err, "Failed to retrieve test results")
		return
	}
	ctx.JSON(http.StatusOK, results)
}
