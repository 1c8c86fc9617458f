// Package auth is the login boundary. The only implementation is a mock that
// accepts any non-blank credentials; a real credential check would replace
// Mock behind the same Authenticator interface.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultDelay is how long the login screen shows its loading indicator.
const DefaultDelay = time.Second

var (
	ErrMissingCredentials = errors.New("please fill in email and password")
	ErrEmailRequired      = errors.New("enter your email to reset the password")
	ErrInvalidToken       = errors.New("invalid session token")
)

type Session struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Authenticator interface {
	Authenticate(email, password string) (Session, error)
	RequestPasswordReset(email string) error
}

// ValidateCredentials is the only check the login form performs.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}
	return nil
}

type Mock struct {
	key   []byte
	ttl   time.Duration
	clock func() time.Time
}

// NewMock returns a Mock that signs session tokens with a per-process random key.
func NewMock() (*Mock, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	return &Mock{
		key:   key,
		ttl:   12 * time.Hour,
		clock: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (m *Mock) Authenticate(email, password string) (Session, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return Session{}, err
	}
	email = strings.TrimSpace(email)
	now := m.clock().Truncate(time.Second)
	exp := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    "shoplist",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(m.key)
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return Session{Email: email, Token: signed, IssuedAt: now, ExpiresAt: exp}, nil
}

// RequestPasswordReset pretends to send a reset email.
func (m *Mock) RequestPasswordReset(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	return nil
}

// Verify parses a token issued by this Mock and returns the signed-in email.
func (m *Mock) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer("shoplist"),
		jwt.WithTimeFunc(m.clock),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// VerifySession checks that s carries a token this Mock issued for s.Email.
func (m *Mock) VerifySession(s Session) error {
	email, err := m.Verify(s.Token)
	if err != nil {
		return err
	}
	if email != s.Email {
		return ErrInvalidToken
	}
	return nil
}
