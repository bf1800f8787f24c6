package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kimhour/StudentClearance/internal/config"
	"github.com/kimhour/StudentClearance/internal/constant"
	"github.com/kimhour/StudentClearance/internal/util"
	"go.uber.org/zap"
)

type JWT struct {
	logger    *zap.SugaredLogger
	jwtSecret string
}

type JWTInterface interface {
	GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error)
	VerifyJwtToken(token string) (*JWTClaims, error)
}

func NewJwt(cfg config.AuthConfig, logger *zap.SugaredLogger) *JWT {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &JWT{
		jwtSecret: cfg.JWT_SECRET,
		logger:    logger,
	}
}

type JWTPayload struct {
	ID       string            `json:"id"`
	Username string            `json:"username"`
	Name     string            `json:"name"`
	Role     constant.UserRole `json:"role"`
}

type JWTClaims struct {
	User JWTPayload `json:"user"`
	Type string     `json:"type"`
	IAT  int64      `json:"iat"`
	EXP  int64      `json:"exp"`
}

// Return refreshToken, accessToken, error
func (j JWT) GenerateRefreshAndAccessToken(payload JWTPayload) (*string, *string, error) {
	j.logger.Debugf("Generate refresh and access token with payload: %v", payload)

	// Refresh token with 7-day expiration
	refreshClaims := jwt.MapClaims{
		"user": payload,
		"type": constant.JWT_TYPE_REFRESH,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	}
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshToken, err := refresh.SignedString([]byte(j.jwtSecret))
	if err != nil {
		return nil, nil, err
	}

	// Access token with 12-hour expiration, the dashboards keep a session for a
	// working day.
	accessClaims := jwt.MapClaims{
		"user": payload,
		"type": constant.JWT_TYPE_ACCESS,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(12 * time.Hour).Unix(),
	}
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessToken, err := access.SignedString([]byte(j.jwtSecret))
	if err != nil {
		return nil, nil, err
	}

	return &refreshToken, &accessToken, nil
}

func (j JWT) VerifyJwtToken(token string) (*JWTClaims, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(j.jwtSecret), nil
	})
	if err != nil {
		j.logger.Debugf("Failed to verify jwt token. Error: %v", err)
		return nil, err
	}

	if !parsedToken.Valid {
		j.logger.Debug("Jwt token is not valid")
		return nil, errors.New("jwt token is not valid")
	}

	user, ok := claims["user"].(map[string]interface{})
	if !ok {
		return nil, errors.New("invalid token: user field is missing or malformed")
	}

	tokenType, _ := claims["type"].(string)

	// jwt/v5 does not require iat/exp, a signed token may omit them
	iat, iatOk := claims["iat"].(float64)
	exp, expOk := claims["exp"].(float64)
	if !iatOk || !expOk {
		return nil, errors.New("invalid token: missing iat or exp claim")
	}

	role, _ := user["role"].(string)
	payload := JWTPayload{
		Role: constant.UserRole(role),
	}
	payload.ID, _ = user["id"].(string)
	payload.Username, _ = user["username"].(string)
	payload.Name, _ = user["name"].(string)

	return &JWTClaims{
		User: payload,
		Type: tokenType,
		IAT:  int64(iat),
		EXP:  int64(exp),
	}, nil
}
