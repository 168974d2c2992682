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

type TestController struct {
	testService service.TestService
}

func NewTestController(testService service.TestService) *TestController {
	return &TestController{testService: testService}
}

// GetTodayTests godoc
// @Summary List tests opening today
// @Description Tests whose window opens today. Students never receive the answer key in this view.
// @Tags Tests
// @Produce json
// @Success 200 {array} dto.TestResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /tests [get]
func (c *TestController) GetTodayTests(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)

	tests, err := c.testService.GetTodayTests(identity.Role)
	if err != nil {
		log.Error().Err(err).Msg("GetTodayTests: service error")
		writeError(ctx, err, "Failed to retrieve tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTest godoc
// @Summary Get details of a specific test
// @Description Full test details with questions, projected by role: the answer key is stripped for students.
// @Tags Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Security BearerAuth
// @Router /tests/{test_id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	test, err := c.testService.GetTest(uint(testID), identity.Role)
	if err != nil {
		log.Warn().Err(err).Uint64("testID", testID).Msg("GetTest: service error")
		writeError(ctx, err, "Failed to retrieve test")
		return
	}
	ctx.JSON(http.StatusOK, test)
}
