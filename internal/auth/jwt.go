package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// secret is read once at startup; the dev fallback keeps local runs
// working without a .env file.
func secret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("netbill-dev-secret-change-me")
}

// Claims carried by a console token. Subject is the user or subscriber
// id, Role gates the route groups.
type Claims struct {
	Subject string
	Role    string
}

// GenerateToken creates a signed JWT for a login. Tokens are valid for
// 72 hours.
func GenerateToken(subject, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(72 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ValidateToken parses and validates a token string and returns its
// claims.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid subject claim")
	}
	role, _ := claims["role"].(string)

	return &Claims{Subject: sub, Role: role}, nil
}
