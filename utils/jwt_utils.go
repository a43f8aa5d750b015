package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bakery-service/config"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken issues a signed bearer token carrying the user email as its
// only identity claim, valid for the configured TTL.
func GenerateToken(email string) (string, error) {
	cfg := config.LoadConfig()

	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(cfg.TokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func ParseToken(tokenString string) (string, error) {
	cfg := config.LoadConfig()
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if email, ok := claims["email"].(string); ok && email != "" {
			return email, nil
		}
	}

	return "", ErrInvalidToken
}
