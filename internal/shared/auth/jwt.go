package auth

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken covers malformed, tampered, and expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	errMissingSecret = errors.New("jwt secret not configured")
)

// Claims is the identity carried by an access token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	now func() time.Time
}

// NewTokenService builds a TokenService with the given secret. A non-positive
// ttl falls back to 24 hours.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given user identity.
func (s *TokenService) Issue(userID, email, name string) (string, error) {
	if len(s.secret) == 0 {
		return "", errMissingSecret
	}
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}

	now := s.now().UTC()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a token and returns its claims.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, errMissingSecret
	}

	var claims Claims
	token, err := jwtlib.ParseWithClaims(tokenString, &claims,
		func(t *jwtlib.Token) (any, error) { return s.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
