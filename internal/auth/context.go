// Package auth carries the already-authenticated request identity. The
// upstream gateway performs authentication; this service only reads the
// identity it forwards.
package auth

import (
	"context"
	"slices"
)

// Rights granted by the upstream identity system.
const (
	RightSystemAdmin      = "SystemAdmin"
	RightViewIdentity     = "ViewIdentity"
	RightViewFlaggedUsers = "ViewFlaggedUsers"
)

type contextKey struct{}

// Context identifies the calling user and the rights granted to them.
type Context struct {
	UserID string
	Rights []string
}

func WithContext(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(contextKey{}).(Context)
	return ac, ok
}

// UserID returns the authenticated user id, or "" when absent.
func UserID(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.UserID
}

// HasRight reports whether the caller holds the given right. SystemAdmin
// implies every other right.
func HasRight(ctx context.Context, right string) bool {
	ac, ok := FromContext(ctx)
	if !ok {
		return false
	}
	if slices.Contains(ac.Rights, RightSystemAdmin) {
		return true
	}
	return slices.Contains(ac.Rights, right)
}
