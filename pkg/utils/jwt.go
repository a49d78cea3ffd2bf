package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carried by both access and refresh tokens. TokenType keeps a
// refresh token from being replayed as an access token and vice versa.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewJWTManager(config JWTConfig) *JWTManager {
	return &JWTManager{
		secret:        []byte(config.Secret),
		accessExpiry:  time.Duration(config.AccessExpiryMinutes) * time.Minute,
		refreshExpiry: time.Duration(config.RefreshExpiryHours) * time.Hour,
	}
}

func (m *JWTManager) CreateAccessToken(userID uuid.UUID, role string) (string, error) {
	return m.createToken(userID, role, TokenTypeAccess, m.accessExpiry)
}

func (m *JWTManager) CreateRefreshToken(userID uuid.UUID, role string) (string, error) {
	return m.createToken(userID, role, TokenTypeRefresh, m.refreshExpiry)
}

func (m *JWTManager) createToken(userID uuid.UUID, role, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID.String(),
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and verifies a token of the expected type.
func (m *JWTManager) ValidateToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, Unauthorizedf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return nil, Unauthorizedf("Invalid or expired token")
	}

	if claims.TokenType != expectedType {
		return nil, Unauthorizedf("Invalid token type")
	}

	return claims, nil
}
