package service

import (
	"fmt"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// authenticatedRole is the role Supabase puts in tokens of signed-in users.
const authenticatedRole = "authenticated"

// AccessClaims are the claims of a Supabase access token that the API reads.
type AccessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenValidator checks Supabase access tokens against the project JWT secret.
type TokenValidator struct {
	jwtSecret []byte
}

// NewTokenValidator creates a validator for HS256 tokens signed with secret.
func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{jwtSecret: []byte(secret)}
}

// ValidateAccessToken parses the token and returns its claims. The subject is
// the user id that scopes every record.
func (v *TokenValidator) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido ou expirado"}
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido"}
	}

	if claims.Role != authenticatedRole {
		return nil, &domain.ErrUnauthorized{Message: "Tipo de token inválido"}
	}
	if claims.Subject == "" {
		return nil, &domain.ErrUnauthorized{Message: "Token sem usuário"}
	}

	return claims, nil
}
