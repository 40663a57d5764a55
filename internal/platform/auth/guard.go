package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Guard decides whether a credential may perform admin writes.
type Guard interface {
	Authorize(ctx context.Context, credential string) bool
}

// GuardFunc adapts a function to Guard.
type GuardFunc func(ctx context.Context, credential string) bool

func (f GuardFunc) Authorize(ctx context.Context, credential string) bool {
	return f(ctx, credential)
}

// PasswordGuard compares the credential with a shared secret in constant
// time. A guard built from an empty secret rejects everything.
type PasswordGuard struct {
	secret []byte
}

func NewPasswordGuard(secret string) *PasswordGuard {
	return &PasswordGuard{secret: []byte(secret)}
}

func (g *PasswordGuard) Authorize(_ context.Context, credential string) bool {
	if len(g.secret) == 0 || credential == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(credential), g.secret) == 1
}

// BcryptGuard checks the credential against a bcrypt hash.
type BcryptGuard struct {
	hash []byte
}

// NewBcryptGuard validates that hash is a bcrypt hash.
func NewBcryptGuard(hash string) (*BcryptGuard, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &BcryptGuard{hash: []byte(hash)}, nil
}

func (g *BcryptGuard) Authorize(_ context.Context, credential string) bool {
	if credential == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(credential)) == nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// AnyGuard authorizes when at least one member does. Nil members are skipped.
type AnyGuard []Guard

func (a AnyGuard) Authorize(ctx context.Context, credential string) bool {
	if credential == "" {
		return false
	}
	for _, g := range a {
		if g != nil && g.Authorize(ctx, credential) {
			return true
		}
	}
	return false
}
