package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/services"
	"github.com/edunir/tripshare/internal/middleware"
)

// SurveyController handles trip survey endpoints
type SurveyController struct {
	surveyService services.SurveyService
}

// NewSurveyController creates a new SurveyController
func NewSurveyController(surveyService services.SurveyService) *SurveyController {
	return &SurveyController{surveyService: surveyService}
}

func parseSurveyID(ctx *gin.Context) (int64, bool) {
	surveyID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid survey ID"),
		})
		return 0, false
	}
	return surveyID, true
}

// CreateSurvey godoc
// @Summary Create a survey on a trip
// @Description Creates a survey with at least two options; creator or accepted participants only
// @Tags surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body dto.CreateSurveyRequest true "Survey"
// @Success 201 {object} dto.APIResponse{data=dto.SurveyResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a trip member"
// @Router /trips/{id}/surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	var req dto.CreateSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid survey request"),
		})
		return
	}

	resp, err := c.surveyService.CreateSurvey(ctx, middleware.GetUserID(ctx), tripID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetTripSurveys godoc
// @Summary List a trip's surveys
// @Description Returns the surveys of a trip with vote tallies and the caller's own vote
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.APIResponse{data=dto.SurveyListResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a trip member"
// @Router /trips/{id}/surveys [get]
func (c *SurveyController) GetTripSurveys(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	resp, err := c.surveyService.GetTripSurveys(ctx, middleware.GetUserID(ctx), tripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Vote godoc
// @Summary Vote on a survey
// @Description Casts or moves the caller's vote on an open survey
// @Tags surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Param request body dto.VoteRequest true "Chosen option"
// @Success 200 {object} dto.APIResponse{data=dto.SurveyResponse}
// @Failure 409 {object} dto.ErrorResponse "Survey closed"
// @Router /surveys/{id}/vote [post]
func (c *SurveyController) Vote(ctx *gin.Context) {
	surveyID, ok := parseSurveyID(ctx)
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid vote request"),
		})
		return
	}

	resp, err := c.surveyService.Vote(ctx, middleware.GetUserID(ctx), surveyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CloseSurvey godoc
// @Summary Close a survey
// @Description Closes a survey to further voting; survey owner or trip creator only
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the survey owner"
// @Router /surveys/{id}/close [post]
func (c *SurveyController) CloseSurvey(ctx *gin.Context) {
	surveyID, ok := parseSurveyID(ctx)
	if !ok {
		return
	}

	if err := c.surveyService.CloseSurvey(ctx, middleware.GetUserID(ctx), surveyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Survey closed"}))
}

// DeleteSurvey godoc
// @Summary Delete a survey
// @Description Deletes a survey with its options and votes; survey owner or trip creator only
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param id path int true "Survey ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the survey owner"
// @Router /surveys/{id} [delete]
func (c *SurveyController) DeleteSurvey(ctx *gin.Context) {
	surveyID, ok := parseSurveyID(ctx)
	if !ok {
		return
	}

	if err := c.surveyService.DeleteSurvey(ctx, middleware.GetUserID(ctx), surveyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Survey deleted"}))
}
