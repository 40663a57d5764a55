package auth

import (
	"context"
	"testing"
)

func TestPasswordGuard(t *testing.T) {
	g := NewPasswordGuard("s3cret")
	ctx := context.Background()

	tests := []struct {
		credential string
		want       bool
	}{
		{"s3cret", true},
		{"s3cret ", false},
		{"S3CRET", false},
		{"", false},
		{"s3cre", false},
	}
	for _, tt := range tests {
		if got := g.Authorize(ctx, tt.credential); got != tt.want {
			t.Errorf("Authorize(%q) = %v, want %v", tt.credential, got, tt.want)
		}
	}
}

func TestPasswordGuard_EmptySecretRejectsAll(t *testing.T) {
	g := NewPasswordGuard("")
	if g.Authorize(context.Background(), "") {
		t.Error("empty secret must not authorize empty credential")
	}
	if g.Authorize(context.Background(), "anything") {
		t.Error("empty secret must not authorize")
	}
}

func TestBcryptGuard(t *testing.T) {
	hash, err := HashPassword("ward-admin")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	g, err := NewBcryptGuard(hash)
	if err != nil {
		t.Fatalf("NewBcryptGuard: %v", err)
	}
	ctx := context.Background()
	if !g.Authorize(ctx, "ward-admin") {
		t.Error("expected correct password to authorize")
	}
	if g.Authorize(ctx, "ward-admin2") {
		t.Error("expected wrong password to be rejected")
	}
	if g.Authorize(ctx, "") {
		t.Error("expected empty credential to be rejected")
	}
}

func TestNewBcryptGuard_InvalidHash(t *testing.T) {
	if _, err := NewBcryptGuard("plaintext"); err == nil {
		t.Fatal("expected error for non-bcrypt hash")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestAnyGuard(t *testing.T) {
	ctx := context.Background()
	deny := GuardFunc(func(context.Context, string) bool { return false })
	allowAll := GuardFunc(func(context.Context, string) bool { return true })

	if (AnyGuard{deny, nil}).Authorize(ctx, "x") {
		t.Error("expected rejection when no member authorizes")
	}
	if !(AnyGuard{deny, NewPasswordGuard("x")}).Authorize(ctx, "x") {
		t.Error("expected authorization from second member")
	}
	if (AnyGuard{allowAll}).Authorize(ctx, "") {
		t.Error("empty credential must never authorize")
	}
	if (AnyGuard{}).Authorize(ctx, "x") {
		t.Error("empty AnyGuard must reject")
	}
}
