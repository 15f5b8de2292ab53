package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adisharma/clubhub/internal/app/models/dto"
	"github.com/adisharma/clubhub/internal/pkg/auth"
)

// SessionUserKey is the gin context key holding the authenticated session user
const SessionUserKey = "sessionUser"

// AuthMiddleware handles bearer-token authentication
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth validates the Authorization header and injects the session user
// into both the gin context and the request context, where the service
// layer reads it.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid or expired token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}

		session := claims.SessionUser()
		c.Set(SessionUserKey, session)
		c.Request = c.Request.WithContext(auth.ContextWithSession(c.Request.Context(), session))

		c.Next()
	}
}
