package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/inkwell/internal/model"
)

func TestVerifier_RoundTrip(t *testing.T) {
	t.Parallel()

	v := NewVerifier("test-secret")

	token, err := v.Mint(42, time.Hour, "token-1")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	sub, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if sub.UserID != 42 {
		t.Errorf("expected user id 42, got %d", sub.UserID)
	}
}

func TestVerifier_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewVerifier("secret-a").Mint(42, time.Hour, "token-1")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := NewVerifier("secret-b").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifier_Expired(t *testing.T) {
	t.Parallel()

	v := NewVerifier("test-secret")

	token, err := v.Mint(42, -time.Minute, "token-1")
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if _, err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifier_Garbage(t *testing.T) {
	t.Parallel()

	v := NewVerifier("test-secret")

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestVerifier_NonNumericSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := NewVerifier("test-secret").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for non-numeric sub, got %v", err)
	}
}

func TestVerifier_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := NewVerifier("test-secret").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for missing sub, got %v", err)
	}
}

func TestVerifier_RejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := NewVerifier("test-secret").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestSubjectContext_RoundTrip(t *testing.T) {
	t.Parallel()

	sub := &model.Subject{UserID: 42}
	ctx := ContextWithSubject(context.Background(), sub)

	got := SubjectFromContext(ctx)
	if got == nil || got.UserID != 42 {
		t.Errorf("expected subject with user id 42, got %+v", got)
	}
}

func TestSubjectContext_Absent(t *testing.T) {
	t.Parallel()

	if got := SubjectFromContext(context.Background()); got != nil {
		t.Errorf("expected nil subject, got %+v", got)
	}
}
