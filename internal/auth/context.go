package auth

import (
	"context"

	"github.com/inkwell/inkwell/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// subjectContextKey is the context key for storing the verified Subject.
	subjectContextKey contextKey = "subject"
)

// ContextWithSubject adds a verified Subject to the context.
func ContextWithSubject(ctx context.Context, sub *model.Subject) context.Context {
	return context.WithValue(ctx, subjectContextKey, sub)
}

// SubjectFromContext retrieves the Subject from the context.
// Returns nil if the request was not authenticated.
func SubjectFromContext(ctx context.Context) *model.Subject {
	sub, ok := ctx.Value(subjectContextKey).(*model.Subject)
	if !ok {
		return nil
	}
	return sub
}
