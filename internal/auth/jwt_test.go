package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kimhour/StudentClearance/internal/config"
	"github.com/kimhour/StudentClearance/internal/constant"
)

func newTestJwt() *JWT {
	return NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)
}

func TestGenerateAndVerifyToken(t *testing.T) {
	j := newTestJwt()

	payload := JWTPayload{
		ID:       "user-1",
		Username: "0221-1001",
		Name:     "John Doe",
		Role:     constant.UserRoleStudent,
	}

	refresh, access, err := j.GenerateRefreshAndAccessToken(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := j.VerifyJwtToken(*access)
	if err != nil {
		t.Fatalf("failed to verify access token: %v", err)
	}
	if claims.Type != constant.JWT_TYPE_ACCESS {
		t.Errorf("expected access token type, got %q", claims.Type)
	}
	if claims.User != payload {
		t.Errorf("expected payload %+v, got %+v", payload, claims.User)
	}

	refreshClaims, err := j.VerifyJwtToken(*refresh)
	if err != nil {
		t.Fatalf("failed to verify refresh token: %v", err)
	}
	if refreshClaims.Type != constant.JWT_TYPE_REFRESH {
		t.Errorf("expected refresh token type, got %q", refreshClaims.Type)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	j := newTestJwt()

	_, access, err := j.GenerateRefreshAndAccessToken(JWTPayload{ID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewJwt(config.AuthConfig{JWT_SECRET: "another-secret"}, nil)
	if _, err := other.VerifyJwtToken(*access); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	j := newTestJwt()

	if _, err := j.VerifyJwtToken("not-a-token"); err == nil {
		t.Error("expected verification of garbage token to fail")
	}
}

func TestVerifyTokenMissingTimestampClaims(t *testing.T) {
	j := newTestJwt()

	// a validly-signed token without iat/exp must fail verification, not panic
	claims := jwt.MapClaims{
		"user": JWTPayload{ID: "user-1"},
		"type": constant.JWT_TYPE_ACCESS,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := j.VerifyJwtToken(token); err == nil {
		t.Error("expected verification to fail for a token without iat/exp")
	}
}
