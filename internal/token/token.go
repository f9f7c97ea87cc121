package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is how long a session token stays valid after issuance.
const TTL = 7 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the identity carried inside a session token.
type Claims struct {
	UserID uint
	Email  string
}

// Service mints and verifies self-contained session tokens. It keeps no
// per-token state; validity is signature plus expiry.
type Service struct {
	Secret []byte
}

func (s *Service) Issue(claims Claims) (string, error) {
	mapClaims := jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"exp":   time.Now().Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return t.SignedString(s.Secret)
}

func (s *Service) Verify(raw string) (Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !t.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	subRaw, ok := mapClaims["sub"].(float64)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: uint(subRaw), Email: email}, nil
}
