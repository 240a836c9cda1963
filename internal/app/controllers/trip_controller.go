package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/services"
	"github.com/edunir/tripshare/internal/middleware"
)

// TripController handles trip endpoints
type TripController struct {
	tripService services.TripService
}

// NewTripController creates a new TripController
func NewTripController(tripService services.TripService) *TripController {
	return &TripController{tripService: tripService}
}

func parseTripID(ctx *gin.Context) (int64, bool) {
	tripID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid trip ID"),
		})
		return 0, false
	}
	return tripID, true
}

// ListTrips godoc
// @Summary List trips
// @Description Lists trips with filtering and pagination. Works anonymously; categories are derived per trip.
// @Tags trips
// @Produce json
// @Param status query string false "Filter by status" Enums(open, closed, completed)
// @Param category query string false "Filter by derived category" Enums(past, full, viable, below_minimum)
// @Param destination query string false "Destination substring"
// @Param departure query string false "Departure substring"
// @Param creatorId query int false "Filter by creator"
// @Param maxCost query number false "Maximum cost per person"
// @Param startDateFrom query string false "Earliest start date (YYYY-MM-DD)"
// @Param startDateTo query string false "Latest start date (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.TripListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Router /trips [get]
func (c *TripController) ListTrips(ctx *gin.Context) {
	var filter dto.TripFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters"),
		})
		return
	}

	resp, err := c.tripService.ListTrips(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetTrip godoc
// @Summary Get a trip
// @Description Returns the trip with its derived category. Authenticated callers also get their relationship and allowed actions.
// @Tags trips
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.APIResponse{data=dto.TripResponse}
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /trips/{id} [get]
func (c *TripController) GetTrip(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	resp, err := c.tripService.GetTrip(ctx, middleware.GetUserID(ctx), tripID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreateTrip godoc
// @Summary Create a trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTripRequest true "Trip data"
// @Success 201 {object} dto.APIResponse{data=dto.TripResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /trips [post]
func (c *TripController) CreateTrip(ctx *gin.Context) {
	var req dto.CreateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid trip data"),
		})
		return
	}

	resp, err := c.tripService.CreateTrip(ctx, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// UpdateTrip godoc
// @Summary Update a trip
// @Description Applies partial changes. Only the creator may edit.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Param request body dto.UpdateTripRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.TripResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /trips/{id} [put]
func (c *TripController) UpdateTrip(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid trip data"),
		})
		return
	}

	resp, err := c.tripService.UpdateTrip(ctx, middleware.GetUserID(ctx), tripID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Description Removes a trip that has no pending or accepted participations
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trip ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the creator"
// @Failure 409 {object} dto.ErrorResponse "Trip still has a roster"
// @Router /trips/{id} [delete]
func (c *TripController) DeleteTrip(ctx *gin.Context) {
	tripID, ok := parseTripID(ctx)
	if !ok {
		return
	}

	if err := c.tripService.DeleteTrip(ctx, middleware.GetUserID(ctx), tripID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Trip deleted"}))
}
