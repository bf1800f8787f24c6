package util

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// ReadBearerToken extracts the token from the Authorization header,
// expected format: "Bearer <token>".
func ReadBearerToken(ctx *gin.Context) (string, error) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header format must be Bearer {token}")
	}

	return parts[1], nil
}
