// Package session carries the authenticated admin through a request's
// context instead of through ambient storage.
package session

import (
	"context"
	"time"
)

// Session identifies the admin behind a request.
type Session struct {
	UserID   string
	Email    string
	IssuedAt time.Time
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
