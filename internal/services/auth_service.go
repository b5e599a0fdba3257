package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid username or password")

// AuthService verifies the configured back-office credential and issues
// signed session tokens. The password is held as a bcrypt hash; plain-text
// comparison is deliberately not supported.
type AuthService struct {
	User         string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

func NewAuthService(user, passwordHash, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{User: user, PasswordHash: passwordHash, Secret: []byte(secret), TTL: ttl}
}

// Login returns a signed token and its expiry on success.
func (s *AuthService) Login(username, password string) (string, time.Time, error) {
	if s.PasswordHash == "" || username != s.User {
		return "", time.Time{}, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, ErrBadCreds
	}

	now := time.Now()
	expires := now.Add(s.TTL)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    "suraah",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify parses the token and returns the admin subject when valid.
func (s *AuthService) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrBadCreds
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrBadCreds
	}
	return claims.Subject, nil
}
