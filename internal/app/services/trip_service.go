package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/repositories"
	"github.com/edunir/tripshare/internal/domain/roster"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
	"github.com/edunir/tripshare/internal/pkg/helpers"
)

// TripService defines the interface for trip operations
type TripService interface {
	CreateTrip(ctx context.Context, creatorID int64, req *dto.CreateTripRequest) (*dto.TripResponse, error)
	GetTrip(ctx context.Context, viewerID, tripID int64) (*dto.TripResponse, error)
	ListTrips(ctx context.Context, filter *dto.TripFilterRequest) (*dto.TripListResponse, error)
	UpdateTrip(ctx context.Context, userID, tripID int64, req *dto.UpdateTripRequest) (*dto.TripResponse, error)
	DeleteTrip(ctx context.Context, userID, tripID int64) error
	GetCreatedTrips(ctx context.Context, userID int64, page, pageSize int) (*dto.TripListResponse, error)
	GetJoinedTrips(ctx context.Context, userID int64, page, pageSize int) (*dto.TripListResponse, error)
}

// tripServiceImpl implements TripService
type tripServiceImpl struct {
	tripRepo          *repositories.TripRepository
	participationRepo *repositories.ParticipationRepository
	logger            zerolog.Logger
}

// NewTripService creates a new TripService
func NewTripService(
	tripRepo *repositories.TripRepository,
	participationRepo *repositories.ParticipationRepository,
	logger zerolog.Logger,
) TripService {
	return &tripServiceImpl{
		tripRepo:          tripRepo,
		participationRepo: participationRepo,
		logger:            logger,
	}
}

// CreateTrip validates and stores a new trip
func (s *tripServiceImpl) CreateTrip(ctx context.Context, creatorID int64, req *dto.CreateTripRequest) (*dto.TripResponse, error) {
	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if endDate.Before(startDate) {
		return nil, apperrors.ErrInvalidDates
	}
	if req.MaxParticipants != nil && *req.MaxParticipants < req.MinParticipants {
		return nil, apperrors.NewBadRequestError("maxParticipants cannot be below minParticipants")
	}

	trip := &models.Trip{
		CreatorID:         creatorID,
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		Destination:       strings.TrimSpace(req.Destination),
		Departure:         strings.TrimSpace(req.Departure),
		StartDate:         startDate,
		EndDate:           endDate,
		CostPerPerson:     req.CostPerPerson,
		MinParticipants:   req.MinParticipants,
		MaxParticipants:   req.MaxParticipants,
		TransportInfo:     req.TransportInfo,
		AccommodationInfo: req.AccommodationInfo,
		Itinerary:         req.Itinerary,
		Status:            models.TripStatusOpen,
	}

	if _, err := s.tripRepo.Create(ctx, trip); err != nil {
		s.logger.Error().Err(err).Int64("creatorID", creatorID).Msg("Failed to create trip")
		return nil, err
	}

	s.logger.Info().Int64("tripID", trip.ID).Int64("creatorID", creatorID).Msg("Trip created")

	resp := dto.ToTripResponse(trip, helpers.Today())
	return &resp, nil
}

// GetTrip retrieves a trip with the viewer's relationship and the actions
// open to them.
func (s *tripServiceImpl) GetTrip(ctx context.Context, viewerID, tripID int64) (*dto.TripResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	today := helpers.Today()
	resp := dto.ToTripResponse(trip, today)

	if viewerID > 0 {
		mine, err := s.participationRepo.GetByTripAndUser(ctx, tripID, viewerID)
		if err != nil {
			return nil, err
		}
		rel, err := roster.Relationship(viewerID, trip, mine)
		if err != nil {
			s.logger.Error().Err(err).Int64("tripID", tripID).Int64("viewerID", viewerID).
				Msg("Roster integrity violation")
			return nil, err
		}
		resp.Viewer = dto.NewViewerContext(rel, trip, today)
	}

	return &resp, nil
}

// ListTrips retrieves trips matching the filter. The category filter is
// evaluated in SQL so pagination counts the matching rows.
func (s *tripServiceImpl) ListTrips(ctx context.Context, filter *dto.TripFilterRequest) (*dto.TripListResponse, error) {
	repoFilter := repositories.TripFilter{
		Status:      filter.Status,
		Category:    filter.Category,
		Today:       helpers.Today(),
		Destination: filter.Destination,
		Departure:   filter.Departure,
		CreatorID:   filter.CreatorID,
		CreatorName: strings.TrimSpace(filter.CreatorName),
		MaxCost:     filter.MaxCost,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
	}

	if filter.StartDateFrom != "" {
		from, err := helpers.ParseDate(filter.StartDateFrom)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		repoFilter.StartDateFrom = &from
	}
	if filter.StartDateTo != "" {
		to, err := helpers.ParseDate(filter.StartDateTo)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		repoFilter.StartDateTo = &to
	}

	trips, total, err := s.tripRepo.GetAll(ctx, repoFilter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list trips")
		return nil, err
	}

	return s.buildTripList(trips, total, filter.Page, filter.PageSize), nil
}

// UpdateTrip applies partial changes; only the creator may edit a trip
func (s *tripServiceImpl) UpdateTrip(ctx context.Context, userID, tripID int64, req *dto.UpdateTripRequest) (*dto.TripResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.CreatorID != userID {
		return nil, apperrors.NewForbiddenError("Only the trip creator can edit the trip")
	}

	if req.Title != nil {
		trip.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.Destination != nil {
		trip.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.Departure != nil {
		trip.Departure = strings.TrimSpace(*req.Departure)
	}
	if req.StartDate != nil {
		startDate, err := helpers.ParseDate(*req.StartDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		trip.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := helpers.ParseDate(*req.EndDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		trip.EndDate = endDate
	}
	if req.CostPerPerson != nil {
		trip.CostPerPerson = req.CostPerPerson
	}
	if req.MinParticipants != nil {
		trip.MinParticipants = *req.MinParticipants
	}
	if req.MaxParticipants != nil {
		trip.MaxParticipants = req.MaxParticipants
	}
	if req.TransportInfo != nil {
		trip.TransportInfo = *req.TransportInfo
	}
	if req.AccommodationInfo != nil {
		trip.AccommodationInfo = *req.AccommodationInfo
	}
	if req.Itinerary != nil {
		trip.Itinerary = *req.Itinerary
	}
	if req.Status != nil {
		status := models.TripStatus(*req.Status)
		if !status.IsValid() {
			return nil, apperrors.NewBadRequestError("unknown trip status")
		}
		trip.Status = status
	}

	if trip.EndDate.Before(trip.StartDate) {
		return nil, apperrors.ErrInvalidDates
	}
	if trip.MaxParticipants != nil && *trip.MaxParticipants < trip.MinParticipants {
		return nil, apperrors.NewBadRequestError("maxParticipants cannot be below minParticipants")
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to update trip")
		return nil, err
	}

	s.logger.Info().Int64("tripID", tripID).Msg("Trip updated")

	resp := dto.ToTripResponse(trip, helpers.Today())
	return &resp, nil
}

// DeleteTrip removes a trip without live participations
func (s *tripServiceImpl) DeleteTrip(ctx context.Context, userID, tripID int64) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return err
	}

	if trip.CreatorID != userID {
		return apperrors.NewForbiddenError("Only the trip creator can delete the trip")
	}

	hasActive, err := s.tripRepo.HasActiveParticipations(ctx, tripID)
	if err != nil {
		return err
	}
	if hasActive {
		return apperrors.ErrTripHasRoster
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to delete trip")
		return err
	}

	s.logger.Info().Int64("tripID", tripID).Msg("Trip deleted")
	return nil
}

// GetCreatedTrips lists the trips the user created
func (s *tripServiceImpl) GetCreatedTrips(ctx context.Context, userID int64, page, pageSize int) (*dto.TripListResponse, error) {
	trips, total, err := s.tripRepo.GetAll(ctx, repositories.TripFilter{
		CreatorID: &userID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list created trips")
		return nil, err
	}

	return s.buildTripList(trips, total, page, pageSize), nil
}

// GetJoinedTrips lists the trips where the user is an accepted participant
func (s *tripServiceImpl) GetJoinedTrips(ctx context.Context, userID int64, page, pageSize int) (*dto.TripListResponse, error) {
	trips, total, err := s.tripRepo.GetByParticipant(ctx, userID, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list joined trips")
		return nil, err
	}

	return s.buildTripList(trips, total, page, pageSize), nil
}

func (s *tripServiceImpl) buildTripList(trips []*models.Trip, total int64, page, pageSize int) *dto.TripListResponse {
	today := helpers.Today()

	resp := &dto.TripListResponse{
		Trips:      make([]dto.TripResponse, 0, len(trips)),
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, trip := range trips {
		resp.Trips = append(resp.Trips, dto.ToTripResponse(trip, today))
	}

	return resp
}
