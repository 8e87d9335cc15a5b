// Package auth resolves who is calling. Every mutating operation asks it first.
package auth

import (
	"context"

	"portfolio-admin/internal/apperr"
)

// Identity is the authenticated caller.
type Identity struct {
	Subject string
	Email   string
	Role    string
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}

// Require returns the caller or an UNAUTHORIZED error.
func Require(ctx context.Context) (*Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || id.Subject == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "You must be signed in to do this")
	}
	return id, nil
}

// RequireRole is Require plus a role check. Admins pass every role check.
func RequireRole(ctx context.Context, role string) (*Identity, error) {
	id, err := Require(ctx)
	if err != nil {
		return nil, err
	}
	if id.Role != role && id.Role != "admin" {
		return nil, apperr.New(apperr.KindForbidden, "Access denied")
	}
	return id, nil
}
