package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims identifies the holder of an admin bearer token. There is a
// single role in this surface, so Role is carried for forward
// compatibility with the teacher's multi-role claim shape rather than any
// present distinction.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAdminToken issues a signed admin bearer token.
func GenerateAdminToken(secret string, ttl time.Duration) (string, error) {
	claims := AdminClaims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken validates an admin bearer token and returns its role.
func ValidateAdminToken(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims.Role, nil
	}
	return "", fmt.Errorf("invalid token")
}
