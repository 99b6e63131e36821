package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService 签发与校验访问令牌
//
// The signing secret is injected at construction; there is no process-wide
// default and no hardcoded fallback.
type JWTService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewJWTService 创建 JWT 服务
func NewJWTService(secret string, expiresIn time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must be configured")
	}
	if expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}
	return &JWTService{secret: []byte(secret), expiresIn: expiresIn}, nil
}

// GenerateToken 签发访问令牌
func (s *JWTService) GenerateToken(userID, rootFolderID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":     userID,
		"root_folder": rootFolderID,
		"exp":         now.Add(s.expiresIn).Unix(),
		"iat":         now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// ParseToken 解析令牌并返回经过认证的用户ID
//
// Current tokens carry "user_id"; legacy tokens carried the id as the
// string "sub" claim and are still accepted.
func (s *JWTService) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}

	if userIDValue, ok := claims["user_id"]; ok {
		userID, ok := userIDValue.(float64)
		if !ok {
			return 0, errors.New("user_id in token is not a valid number")
		}
		return uint(userID), nil
	}

	// 旧格式令牌
	if subValue, ok := claims["sub"]; ok {
		sub, ok := subValue.(string)
		if !ok {
			return 0, errors.New("sub in token is not a valid string")
		}
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("sub in token is not a numeric id: %w", err)
		}
		return uint(userID), nil
	}

	return 0, errors.New("token carries neither user_id nor sub claim")
}
