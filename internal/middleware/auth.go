package middleware

import (
	"net/http"
	"slices"

	"github.com/kimhour/StudentClearance/internal/auth"
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		ctx.Abort()
		return
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		m.app.Logger.Debugf("Failed to verify token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid token", util.GenerateErrorMessages(err, "unauthorized"), nil)
		ctx.Abort()
		return
	}

	if claim.Type != constant.JWT_TYPE_ACCESS {
		m.app.Logger.Debugf("Invalid token type: %s", claim.Type)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid access token type", nil, nil)
		ctx.Abort()
		return
	}

	ctx.Set("user", claim.User)
	ctx.Next()
}

// RequireRoles gates a route to the given roles. Runs after AuthMiddleware.
func (m Middleware) RequireRoles(roles ...constant.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, exists := ctx.Get("user")
		if !exists {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil, nil)
			ctx.Abort()
			return
		}

		payload, ok := user.(auth.JWTPayload)
		if !ok {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", nil, nil)
			ctx.Abort()
			return
		}

		if !slices.Contains(roles, payload.Role) {
			util.ResponseFailed(ctx, http.StatusForbidden, "Forbidden", nil, nil)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
