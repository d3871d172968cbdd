package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shenikar/live_location_sync/internal/models"
)

// ErrInvalidToken возвращается для подписи, срока или содержимого, не прошедших проверку
var ErrInvalidToken = errors.New("invalid token")

// Claims - содержимое токена субъекта: sub - ID, role - роль
type Claims struct {
	Role models.Role `json:"role"`
	gojwt.RegisteredClaims
}

// Issue выпускает HS256-токен для субъекта
func Issue(secret string, principal models.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: principal.Role,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   principal.ID.String(),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия токена и возвращает субъекта
func Parse(secret, raw string) (models.Principal, error) {
	claims := &Claims{}
	parser := gojwt.NewParser(
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(raw, claims, func(*gojwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}
	if !claims.Role.Valid() {
		return models.Principal{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return models.Principal{ID: id, Role: claims.Role}, nil
}
