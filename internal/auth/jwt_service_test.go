package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- 测试 NewJWTService ---

func TestNewJWTService_EmptySecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.Error(t, err)
}

func TestNewJWTService_NonPositiveExpiryDefaults(t *testing.T) {
	svc, err := NewJWTService("secret", 0)
	require.NoError(t, err)

	token, err := svc.GenerateToken(1, 2)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

// --- 测试签发与解析 ---

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateToken(42, 7)
	require.NoError(t, err)

	userID, err := svc.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer, err := NewJWTService("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateToken(1, 1)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ParseToken(expired)
	assert.Error(t, err)
}

// TestJWTService_LegacySubClaim 旧格式令牌把用户ID放在字符串 sub 里
func TestJWTService_LegacySubClaim(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub": "314",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	legacy, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	userID, err := svc.ParseToken(legacy)
	assert.NoError(t, err)
	assert.Equal(t, uint(314), userID)
}

func TestJWTService_NoIdentityClaimRejected(t *testing.T) {
	svc, err := NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}
