package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adisharma/clubhub/internal/app/models/dto"
	"github.com/adisharma/clubhub/internal/pkg/apperrors"
)

// HandleAPIError translates service errors into the standard error
// response with the right HTTP status.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := dto.ErrorCodeInternalServer

	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidEmail,
		apperrors.ErrInvalidPassword,
		apperrors.ErrPaidEventFreePath,
		apperrors.ErrBadRequest):
		status = http.StatusBadRequest
		code = dto.ErrorCodeValidationFailed

	case apperrors.Is(err, apperrors.ErrInvalidCredentials,
		apperrors.ErrNoActiveSession,
		apperrors.ErrTokenInvalid,
		apperrors.ErrTokenExpired,
		apperrors.ErrTokenNotFound):
		status = http.StatusUnauthorized
		code = dto.ErrorCodeInvalidCredentials

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrRegistrationNotFound,
		apperrors.ErrTeamNotFound,
		apperrors.ErrAccountNotFound):
		status = http.StatusNotFound
		code = dto.ErrorCodeResourceNotFound

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrResourceAlreadyExists):
		status = http.StatusConflict
		code = dto.ErrorCodeResourceAlreadyExists
	}

	detail := dto.NewErrorDetail(code, err.Error())
	c.JSON(status, dto.NewErrorResponse(detail))
}
