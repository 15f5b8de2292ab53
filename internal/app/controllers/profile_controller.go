package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adisharma/clubhub/internal/app/models/dto"
	"github.com/adisharma/clubhub/internal/app/services"
	"github.com/adisharma/clubhub/internal/middleware"
)

// ProfileController handles profile operations for the signed-in user
type ProfileController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetProfile returns the signed-in user's profile, creating a minimal
// one on first access. A null payload means no profile could be loaded
// or created.
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	session, ok := sessionUser(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	user := c.profileService.GetOrCreate(ctx.Request.Context(), session)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// GetRawProfile returns the stored profile document as-is
func (c *ProfileController) GetRawProfile(ctx *gin.Context) {
	session, ok := sessionUser(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	doc, err := c.profileService.GetRaw(ctx.Request.Context(), session.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(doc))
}

// CreateProfile writes a full profile for the signed-in user
func (c *ProfileController) CreateProfile(ctx *gin.Context) {
	session, ok := sessionUser(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	user, err := c.profileService.Create(ctx.Request.Context(), session, req.Patch())
	if err != nil {
		c.logger.Warn().Err(err).Str("userId", session.ID).Msg("profile creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user))
}

// UpdateProfile merges the supplied fields into the signed-in user's profile
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	session, ok := sessionUser(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.profileService.Update(ctx.Request.Context(), session.ID, req.Patch()); err != nil {
		c.logger.Warn().Err(err).Str("userId", session.ID).Msg("profile update failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}
