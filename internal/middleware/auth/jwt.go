package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime is how long an issued token stays valid.
const DefaultTokenLifetime = 10 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySubject = errors.New("token has no subject")
)

// TokenIssuer signs and inspects HS512 tokens whose subject is a user email.
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret string, lifetime time.Duration) *TokenIssuer {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Issue returns a signed token with sub=email, iat=now and exp=now+lifetime.
func (t *TokenIssuer) Issue(email string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ExtractSubject verifies the signature and returns the embedded email.
// Expiry is not enforced here; use IsExpired or Validate for that.
func (t *TokenIssuer) ExtractSubject(tokenString string) (string, error) {
	claims, err := t.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrEmptySubject
	}
	return claims.Subject, nil
}

// IsExpired reports whether the current time is past the token's expiration.
// Tokens that fail verification are reported as expired.
func (t *TokenIssuer) IsExpired(tokenString string) bool {
	claims, err := t.parse(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return true
	}
	return t.now().After(claims.ExpiresAt.Time)
}

// Validate reports whether the token belongs to expectedEmail and has not expired.
func (t *TokenIssuer) Validate(tokenString, expectedEmail string) bool {
	subject, err := t.ExtractSubject(tokenString)
	if err != nil {
		return false
	}
	return subject == expectedEmail && !t.IsExpired(tokenString)
}

func (t *TokenIssuer) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	},
		// expiry is checked by IsExpired against the issuer clock
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
