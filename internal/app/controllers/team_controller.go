package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adisharma/clubhub/internal/app/models/dto"
	"github.com/adisharma/clubhub/internal/app/services"
	"github.com/adisharma/clubhub/internal/middleware"
)

// TeamController handles team operations for team-based events
type TeamController struct {
	teamService services.TeamService
	logger      zerolog.Logger
}

// NewTeamController creates a new TeamController
func NewTeamController(teamService services.TeamService, logger zerolog.Logger) *TeamController {
	return &TeamController{
		teamService: teamService,
		logger:      logger,
	}
}

// Create creates a team with its creator as sole member
func (c *TeamController) Create(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	id, err := c.teamService.Create(ctx.Request.Context(), clubID, eventID, req.Name, req.Creator.Member())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.TeamIDResponse{ID: id}))
}

// Join adds a member to an existing team
func (c *TeamController) Join(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.JoinTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.teamService.Join(ctx.Request.Context(), clubID, eventID, ctx.Param("teamId"), req.Member.Member()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Search returns teams whose name starts with the query text
func (c *TeamController) Search(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	teams, err := c.teamService.Search(ctx.Request.Context(), clubID, eventID, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teams))
}
