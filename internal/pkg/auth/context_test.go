package auth

import (
	"context"
	"testing"

	"github.com/adisharma/clubhub/internal/app/models"
)

func TestSessionFromContext(t *testing.T) {
	if _, ok := SessionFromContext(context.Background()); ok {
		t.Fatal("bare context should carry no session")
	}

	ctx := ContextWithSession(context.Background(), &models.SessionUser{ID: "u1", Email: "a@example.com"})
	user, ok := SessionFromContext(ctx)
	if !ok || user.ID != "u1" {
		t.Fatalf("got %+v, %v", user, ok)
	}
}

func TestSessionFromContext_EmptyIdentity(t *testing.T) {
	if _, ok := SessionFromContext(ContextWithSession(context.Background(), nil)); ok {
		t.Fatal("nil session should not count as authenticated")
	}
	if _, ok := SessionFromContext(ContextWithSession(context.Background(), &models.SessionUser{})); ok {
		t.Fatal("session without an id should not count as authenticated")
	}
}
