package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/services"
	"github.com/edunir/tripshare/internal/middleware"
)

// ParticipationController handles participation lifecycle endpoints
type ParticipationController struct {
	participationService services.ParticipationService
}

// NewParticipationController creates a new ParticipationController
func NewParticipationController(participationService services.ParticipationService) *ParticipationController {
	return &ParticipationController{participationService: participationService}
}

// RequestToJoin godoc
// @Summary Request to join a trip
// @Description Creates a pending participation with an optional message to the creator
// @Tags participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body dto.CreateParticipationRequest true "Join request"
// @Success 201 {object} dto.APIResponse{data=dto.ParticipationResponse}
// @Failure 409 {object} dto.ErrorResponse "Own trip, already requested, trip full, closed or over"
// @Router /trips/{id}/participations [post]
func (c *ParticipationController) RequestToJoin(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	var req dto.CreateParticipationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid join request"),
		})
		return
	}

	resp, err := c.participationService.RequestToJoin(ctx, middleware.GetUserID(ctx), tripID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetTripParticipations godoc
// @Summary List a trip's participations
// @Description Lists the join requests of a trip; only the creator may call this
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param status query string false "Filter by status" Enums(pending, accepted, rejected, left)
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ParticipationListResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Router /trips/{id}/participations [get]
func (c *ParticipationController) GetTripParticipations(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	var filter dto.ParticipationFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	resp, err := c.participationService.GetTripParticipations(ctx, middleware.GetUserID(ctx), tripID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetParticipation godoc
// @Summary Get a participation
// @Description Returns a single join request; visible to the requester and the trip creator
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Success 200 {object} dto.APIResponse{data=dto.ParticipationResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the requester or creator"
// @Router /participations/{id} [get]
func (c *ParticipationController) GetParticipation(ctx *gin.Context) {
	participationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid participation ID"),
		})
		return
	}

	resp, err := c.participationService.GetParticipation(ctx, middleware.GetUserID(ctx), participationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// UpdateStatus godoc
// @Summary Decide on or leave a participation
// @Description The trip creator accepts or rejects a pending request; an accepted participant leaves
// @Tags participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Param request body dto.UpdateParticipationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.ParticipationResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller may not perform this transition"
// @Failure 409 {object} dto.ErrorResponse "Illegal transition or trip full"
// @Router /participations/{id} [patch]
func (c *ParticipationController) UpdateStatus(ctx *gin.Context) {
	participationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid participation ID"),
		})
		return
	}

	var req dto.UpdateParticipationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid status"),
		})
		return
	}

	resp, err := c.participationService.UpdateStatus(ctx, middleware.GetUserID(ctx), participationID, models.ParticipationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CancelRequest godoc
// @Summary Cancel a pending join request
// @Description Withdraws the caller's own pending request, deleting it
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Participation ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the requester"
// @Failure 409 {object} dto.ErrorResponse "Request is no longer pending"
// @Router /participations/{id} [delete]
func (c *ParticipationController) CancelRequest(ctx *gin.Context) {
	participationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid participation ID"),
		})
		return
	}

	if err := c.participationService.CancelRequest(ctx, middleware.GetUserID(ctx), participationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Request cancelled"}))
}
