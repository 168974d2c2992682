package auth

import (
	"errors"
	"net/http"

	"github.com/examhive/examhive/internal/apperr"
	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Log in with email and password
// @Description Issues a bearer token carrying the user id and role.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Email and password"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Incorrect email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.Login(req)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			ctx.JSON(ae.Status(), dto.ErrorResponse{Message: ae.Message, Kind: string(ae.Kind)})
			return
		}
		log.Error().Err(err).Msg("Login: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to log in"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
