package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adisharma/clubhub/internal/pkg/apperrors"
)

func TestHandleAPIError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest},
		{"paid event on free path", apperrors.New(apperrors.ErrPaidEventFreePath, "use the paid path"), http.StatusBadRequest},
		{"bad credentials", apperrors.NewAuthenticationError("invalid email or password"), http.StatusUnauthorized},
		{"missing session", apperrors.New(apperrors.ErrNoActiveSession, "sign in first"), http.StatusUnauthorized},
		{"expired token", apperrors.New(apperrors.ErrTokenExpired, "token expired"), http.StatusUnauthorized},
		{"missing team", apperrors.New(apperrors.ErrTeamNotFound, "team not found"), http.StatusNotFound},
		{"missing registration", apperrors.New(apperrors.ErrRegistrationNotFound, "registration not found"), http.StatusNotFound},
		{"duplicate email", apperrors.New(apperrors.ErrEmailAlreadyExists, "email already exists"), http.StatusConflict},
		{"unknown", apperrors.New(nil, "boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			HandleAPIError(c, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
