package auth

import (
	"context"

	"github.com/adisharma/clubhub/internal/app/models"
)

type sessionKey struct{}

// ContextWithSession attaches the authenticated session user to a context
func ContextWithSession(ctx context.Context, user *models.SessionUser) context.Context {
	return context.WithValue(ctx, sessionKey{}, user)
}

// SessionFromContext returns the authenticated session user, if any
func SessionFromContext(ctx context.Context) (*models.SessionUser, bool) {
	user, ok := ctx.Value(sessionKey{}).(*models.SessionUser)
	if !ok || user == nil || user.ID == "" {
		return nil, false
	}
	return user, true
}
