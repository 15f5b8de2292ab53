package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "clubhub-test",
	})

	router := gin.New()
	router.Use(NewAuthMiddleware(jwtService).JWTAuth())
	router.GET("/whoami", func(c *gin.Context) {
		// The session must be visible both via the gin key and the
		// request context the services read from.
		ginUser, _ := c.Get(SessionUserKey)
		ctxUser, ok := auth.SessionFromContext(c.Request.Context())
		if !ok {
			c.String(http.StatusInternalServerError, "no session in request context")
			return
		}
		if ginUser.(*models.SessionUser).ID != ctxUser.ID {
			c.String(http.StatusInternalServerError, "session mismatch")
			return
		}
		c.String(http.StatusOK, ctxUser.ID)
	})
	return router, jwtService
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	pair, err := jwtService.GenerateTokenPair(&models.SessionUser{ID: "u1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "u1" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestJWTAuth_BadToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
