package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/middleware"
)

// sessionUser returns the authenticated session user placed in the gin
// context by the auth middleware.
func sessionUser(ctx *gin.Context) (*models.SessionUser, bool) {
	value, exists := ctx.Get(middleware.SessionUserKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*models.SessionUser)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}
