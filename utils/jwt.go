package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessToken  = "access"
	refreshToken = "refresh"
)

type Claims struct {
	UserID    uint   `json:"id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTManager signs and validates HS256 access/refresh tokens.
type JWTManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTManager(secret string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (m *JWTManager) Issue(userID uint, email string) (string, string, error) {
	access, err := m.sign(userID, email, accessToken, m.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := m.sign(userID, email, refreshToken, m.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *JWTManager) sign(userID uint, email, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ValidateAccess parses an access token and returns its claims.
func (m *JWTManager) ValidateAccess(tokenString string) (*Claims, error) {
	return m.parse(tokenString, accessToken)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (m *JWTManager) Refresh(oldRefreshToken string) (string, string, error) {
	claims, err := m.parse(oldRefreshToken, refreshToken)
	if err != nil {
		return "", "", err
	}
	return m.Issue(claims.UserID, claims.Email)
}

func (m *JWTManager) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("expected %s token", tokenType)
	}
	if claims.Email == "" {
		return nil, errors.New("email not found in token")
	}
	return claims, nil
}
