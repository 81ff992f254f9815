package utils

import (
	"errors" // Error construction
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library

	"creditline/internal/domain" // Role type
)

// TokenTTL is how long an issued session token stays valid
const TokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail signature or claim checks
var ErrInvalidToken = errors.New("invalid token")

// Claims carried by session tokens
type Claims struct {
	UserID               string      `json:"user_id"` // User ID
	Email                string      `json:"email"`   // User email
	Role                 domain.Role `json:"role"`    // applicant or employee
	jwt.RegisteredClaims             // Standard JWT claims
}

// GenerateJWT signs a session token for a user
func GenerateJWT(user domain.User, secret string, now time.Time) (string, error) {
	claims := Claims{
		UserID: user.ID,    // Subject user
		Email:  user.Email, // For display on the client
		Role:   user.Role,  // Checked by the employee guard
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,                               // Standard subject
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)), // Token expires in 24 hours
			IssuedAt:  jwt.NewNumericDate(now),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a session token
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != "" {
		return claims, nil // Return claims if valid
	}
	return nil, ErrInvalidToken
}
