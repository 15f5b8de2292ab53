package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adisharma/clubhub/internal/app/models"
	"github.com/adisharma/clubhub/internal/app/models/dto"
	"github.com/adisharma/clubhub/internal/app/services"
	"github.com/adisharma/clubhub/internal/middleware"
)

// RegistrationController handles event registration operations
type RegistrationController struct {
	registrationService services.RegistrationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		logger:              logger,
	}
}

func eventPath(ctx *gin.Context) (clubID, eventID string) {
	return ctx.Param("clubId"), ctx.Param("eventId")
}

// Register creates a registration for a free event
func (c *RegistrationController) Register(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.RegisterEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	id, err := c.registrationService.Register(ctx.Request.Context(), clubID, eventID, req.User.User(), req.Event.Info(), req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.RegistrationIDResponse{ID: id}))
}

// RegisterPaid creates a registration for a paid event. The session
// identity, not the payload, decides who gets registered.
func (c *RegistrationController) RegisterPaid(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.RegisterEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	id, err := c.registrationService.RegisterPaid(ctx.Request.Context(), clubID, eventID, req.User.User(), req.Event.Info(), req.PaymentID, req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.RegistrationIDResponse{ID: id}))
}

// RegisterTeam creates a registration linked to a team
func (c *RegistrationController) RegisterTeam(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.RegisterEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	id, err := c.registrationService.RegisterTeam(ctx.Request.Context(), clubID, eventID, req.User.User(), req.Event.Info(), req.TeamID, req.Note)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.RegistrationIDResponse{ID: id}))
}

// List returns all registrations for the event
func (c *RegistrationController) List(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	regs, err := c.registrationService.EventRegistrations(ctx.Request.Context(), clubID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(regs))
}

// Mine returns the signed-in user's registrations for the event
func (c *RegistrationController) Mine(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	session, ok := sessionUser(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	regs := c.registrationService.UserRegistrations(ctx.Request.Context(), clubID, eventID, session.ID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(regs))
}

// Stats returns derived registration counts for the event
func (c *RegistrationController) Stats(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	stats, err := c.registrationService.Stats(ctx.Request.Context(), clubID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// Get returns one registration by id
func (c *RegistrationController) Get(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	reg := c.registrationService.Get(ctx.Request.Context(), clubID, eventID, ctx.Param("registrationId"))
	if reg == nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Registration not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reg))
}

// UpdateStatus sets a registration's lifecycle status
func (c *RegistrationController) UpdateStatus(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	err := c.registrationService.UpdateStatus(ctx.Request.Context(), clubID, eventID, ctx.Param("registrationId"), models.RegistrationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// CheckIn marks a registration checked in
func (c *RegistrationController) CheckIn(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	err := c.registrationService.CheckIn(ctx.Request.Context(), clubID, eventID, ctx.Param("registrationId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// UpdatePayment sets a registration's payment state
func (c *RegistrationController) UpdatePayment(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.UpdatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	err := c.registrationService.UpdatePayment(ctx.Request.Context(), clubID, eventID, ctx.Param("registrationId"),
		models.PaymentStatus(req.PaymentStatus), req.PaymentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// Delete removes a registration
func (c *RegistrationController) Delete(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	err := c.registrationService.Delete(ctx.Request.Context(), clubID, eventID, ctx.Param("registrationId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
}

// StorePayment records a successful payment for the event
func (c *RegistrationController) StorePayment(ctx *gin.Context) {
	clubID, eventID := eventPath(ctx)

	var req dto.StorePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	rec := &models.PaymentRecord{
		PaymentID:      req.PaymentID,
		RegistrationID: req.RegistrationID,
		EventID:        eventID,
		ClubID:         clubID,
		Amount:         req.Amount,
		UserID:         req.UserID,
		UserEmail:      req.UserEmail,
	}
	if err := c.registrationService.StorePayment(ctx.Request.Context(), rec); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(nil))
}

// GetPayment returns one stored payment record by id
func (c *RegistrationController) GetPayment(ctx *gin.Context) {
	rec, err := c.registrationService.Payment(ctx.Request.Context(), ctx.Param("paymentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if rec == nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Payment record not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rec))
}
