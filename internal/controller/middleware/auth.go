package middleware

import (
	"net/http"
	"strings"

	"github.com/examhive/examhive/internal/dto"
	"github.com/examhive/examhive/internal/service"
	"github.com/gin-gonic/gin"
)

const identityKey = "examhive.identity"

// RequireAuth resolves the bearer token into an Identity and attaches it to
// the request context. Handlers read it back with CurrentIdentity and pass
// the user id and role to services as explicit arguments.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "You are not logged in"})
			return
		}
		identity, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.Set(identityKey, *identity)
		ctx.Next()
	}
}

// RequireRoles rejects requests whose identity role is not in the allowed
// set. Must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, ok := CurrentIdentity(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "You are not logged in"})
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "You do not have permission to perform this action"})
	}
}

func CurrentIdentity(ctx *gin.Context) (service.Identity, bool) {
	val, ok := ctx.Get(identityKey)
	if !ok {
		return service.Identity{}, false
	}
	identity, ok := val.(service.Identity)
	return identity, ok
}
