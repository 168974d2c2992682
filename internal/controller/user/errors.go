package user

import (
	"errors"
	"net/http"

	"github.com/examhive/examhive/internal/apperr"
	"github.com/examhive/examhive/internal/dto"
	"github.com/gin-gonic/gin"
)

// writeError maps taxonomy errors onto their HTTP status; anything else is
// an infrastructure fault and must not leak as a business-rule violation.
func writeError(ctx *gin.Context, err error, fallback string) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		ctx.JSON(ae.Status(), dto.ErrorResponse{Message: ae.Message, Kind: string(ae.Kind)})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
}
