package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/services"
	"github.com/edunir/tripshare/internal/middleware"
)

// RatingController handles post-trip rating endpoints
type RatingController struct {
	ratingService services.RatingService
}

// NewRatingController creates a new RatingController
func NewRatingController(ratingService services.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// RateTraveler godoc
// @Summary Rate a fellow traveler
// @Description Submits a 1-5 rating for another member of a finished trip
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body dto.CreateRatingRequest true "Rating"
// @Success 201 {object} dto.APIResponse{data=dto.RatingResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller or target not eligible"
// @Failure 409 {object} dto.ErrorResponse "Trip not finished or already rated"
// @Router /trips/{id}/ratings [post]
func (c *RatingController) RateTraveler(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid rating request"),
		})
		return
	}

	resp, err := c.ratingService.RateTraveler(ctx, middleware.GetUserID(ctx), tripID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetTripRatingsGiven godoc
// @Summary List ratings the caller gave on a trip
// @Description Returns the ratings the caller has already submitted for a trip, so clients can hide rated members
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RatingResponse}
// @Router /trips/{id}/ratings [get]
func (c *RatingController) GetTripRatingsGiven(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	resp, err := c.ratingService.GetTripRatingsGiven(ctx, middleware.GetUserID(ctx), tripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
