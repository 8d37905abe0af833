package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT for the given customer ID (CPF digits).
// Token expires in 24 hours.
func GenerateToken(customerID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": customerID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// GenerateTokenForTest generates a JWT token for testing purposes.
func GenerateTokenForTest(customerID string) (string, error) {
	return GenerateToken(customerID)
}

// ValidateToken parses and validates a JWT token string.
// Returns the customer ID if valid, or an error if invalid.
func ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	customerID, ok := claims["sub"].(string)
	if !ok || customerID == "" {
		return "", errors.New("invalid customer id in token")
	}
	return customerID, nil
}
