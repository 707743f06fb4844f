// Package auth provides bearer token verification and subject context plumbing.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/inkwell/internal/model"
)

// Token verification errors. All failure modes collapse to ErrInvalidToken
// at the HTTP boundary to prevent credential probing.
var (
	ErrInvalidToken = errors.New("invalid token")
)

// Verifier maps a request credential to a verified Subject.
// The concrete implementation checks HS256-signed JWTs; handlers only ever
// see the Subject, never the token mechanics.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier with the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token, returning the Subject it
// identifies. The sub claim carries the user id.
func (v *Verifier) Verify(token string) (*model.Subject, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &model.Subject{UserID: userID}, nil
}

// Mint signs a token for the given user. Token issuance belongs to the
// identity system; this exists for the bootstrap tooling and tests.
func (v *Verifier) Mint(userID int64, ttl time.Duration, tokenID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
