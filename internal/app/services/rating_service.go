package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/repositories"
	"github.com/edunir/tripshare/internal/db"
	"github.com/edunir/tripshare/internal/domain/roster"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
	"github.com/edunir/tripshare/internal/pkg/helpers"
)

// RatingService defines the interface for rating operations
type RatingService interface {
	RateTraveler(ctx context.Context, raterID, tripID int64, req *dto.CreateRatingRequest) (*dto.RatingResponse, error)
	GetTripRatingsGiven(ctx context.Context, raterID, tripID int64) ([]dto.RatingResponse, error)
}

// ratingServiceImpl implements RatingService
type ratingServiceImpl struct {
	ratingRepo        *repositories.RatingRepository
	tripRepo          *repositories.TripRepository
	participationRepo *repositories.ParticipationRepository
	userRepo          *repositories.UserRepository
	database          *db.PostgresDB
	logger            zerolog.Logger
}

// NewRatingService creates a new RatingService
func NewRatingService(
	ratingRepo *repositories.RatingRepository,
	tripRepo *repositories.TripRepository,
	participationRepo *repositories.ParticipationRepository,
	userRepo *repositories.UserRepository,
	database *db.PostgresDB,
	logger zerolog.Logger,
) RatingService {
	return &ratingServiceImpl{
		ratingRepo:        ratingRepo,
		tripRepo:          tripRepo,
		participationRepo: participationRepo,
		userRepo:          userRepo,
		database:          database,
		logger:            logger,
	}
}

// RateTraveler records a rating for a co-traveler of a past trip. The rating
// row and the rated user's aggregate are written in one transaction.
func (s *ratingServiceImpl) RateTraveler(ctx context.Context, raterID, tripID int64, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if req.Score < models.RatingMin || req.Score > models.RatingMax {
		return nil, apperrors.ErrRatingOutOfRange
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	tripRoster, err := s.participationRepo.GetAcceptedByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := roster.RatingEligible(trip, raterID, req.RatedID, tripRoster, helpers.Today()); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		TripID:  tripID,
		RaterID: raterID,
		RatedID: req.RatedID,
		Score:   req.Score,
		Comment: req.Comment,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.ratingRepo.Create(ctx, tx, rating); err != nil {
			return err
		}
		return s.userRepo.ApplyRating(ctx, tx, req.RatedID, req.Score)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyRated) {
			s.logger.Error().Err(err).Int64("tripID", tripID).Int64("raterID", raterID).
				Msg("Failed to store rating")
		}
		return nil, err
	}

	s.logger.Info().Int64("ratingID", rating.ID).Int64("tripID", tripID).
		Int64("raterID", raterID).Int64("ratedID", req.RatedID).Msg("Rating recorded")

	resp := dto.ToRatingResponse(rating)
	return &resp, nil
}

// GetTripRatingsGiven lists the ratings the caller has already given for a
// trip, so clients can grey out rated co-travelers.
func (s *ratingServiceImpl) GetTripRatingsGiven(ctx context.Context, raterID, tripID int64) ([]dto.RatingResponse, error) {
	if _, err := s.tripRepo.GetByID(ctx, tripID); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.GetByTripAndRater(ctx, tripID, raterID)
	if err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to list given ratings")
		return nil, err
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for _, rating := range ratings {
		responses = append(responses, dto.ToRatingResponse(rating))
	}

	return responses, nil
}
