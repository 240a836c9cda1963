package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/repositories"
	"github.com/edunir/tripshare/internal/db"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
)

// SurveyService defines the interface for trip survey operations
type SurveyService interface {
	CreateSurvey(ctx context.Context, userID, tripID int64, req *dto.CreateSurveyRequest) (*dto.SurveyResponse, error)
	GetTripSurveys(ctx context.Context, userID, tripID int64) (*dto.SurveyListResponse, error)
	Vote(ctx context.Context, userID, surveyID int64, req *dto.VoteRequest) (*dto.SurveyResponse, error)
	CloseSurvey(ctx context.Context, userID, surveyID int64) error
	DeleteSurvey(ctx context.Context, userID, surveyID int64) error
}

// surveyServiceImpl implements SurveyService
type surveyServiceImpl struct {
	surveyRepo        *repositories.SurveyRepository
	tripRepo          *repositories.TripRepository
	participationRepo *repositories.ParticipationRepository
	database          *db.PostgresDB
	logger            zerolog.Logger
}

// NewSurveyService creates a new SurveyService
func NewSurveyService(
	surveyRepo *repositories.SurveyRepository,
	tripRepo *repositories.TripRepository,
	participationRepo *repositories.ParticipationRepository,
	database *db.PostgresDB,
	logger zerolog.Logger,
) SurveyService {
	return &surveyServiceImpl{
		surveyRepo:        surveyRepo,
		tripRepo:          tripRepo,
		participationRepo: participationRepo,
		database:          database,
		logger:            logger,
	}
}

// isTripMember reports whether the user is the trip creator or an accepted
// participant. Surveys and chat are member-only spaces.
func isTripMember(ctx context.Context, tripRepo *repositories.TripRepository, participationRepo *repositories.ParticipationRepository, userID, tripID int64) (bool, error) {
	trip, err := tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return false, err
	}
	if trip.CreatorID == userID {
		return true, nil
	}

	mine, err := participationRepo.GetByTripAndUser(ctx, tripID, userID)
	if err != nil {
		return false, err
	}
	for _, p := range mine {
		if p.Status == models.ParticipationAccepted {
			return true, nil
		}
	}
	return false, nil
}

// CreateSurvey creates a poll on a trip. Any trip member may open one.
func (s *surveyServiceImpl) CreateSurvey(ctx context.Context, userID, tripID int64, req *dto.CreateSurveyRequest) (*dto.SurveyResponse, error) {
	member, err := isTripMember(ctx, s.tripRepo, s.participationRepo, userID, tripID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.NewForbiddenError("Only trip members can create surveys")
	}

	survey := &models.Survey{
		TripID:    tripID,
		CreatorID: userID,
		Question:  req.Question,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.surveyRepo.Create(ctx, tx, survey, req.Options)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to create survey")
		return nil, err
	}

	s.logger.Info().Int64("surveyID", survey.ID).Int64("tripID", tripID).Msg("Survey created")

	resp := dto.ToSurveyResponse(survey)
	return &resp, nil
}

// GetTripSurveys lists the surveys of a trip for a member, marking the
// caller's own vote.
func (s *surveyServiceImpl) GetTripSurveys(ctx context.Context, userID, tripID int64) (*dto.SurveyListResponse, error) {
	member, err := isTripMember(ctx, s.tripRepo, s.participationRepo, userID, tripID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.NewForbiddenError("Only trip members can view surveys")
	}

	surveys, err := s.surveyRepo.GetByTrip(ctx, tripID)
	if err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to list surveys")
		return nil, err
	}

	resp := &dto.SurveyListResponse{Surveys: make([]dto.SurveyResponse, 0, len(surveys))}
	for _, survey := range surveys {
		surveyResp := dto.ToSurveyResponse(survey)
		vote, err := s.surveyRepo.GetUserVote(ctx, survey.ID, userID)
		if err != nil {
			return nil, err
		}
		surveyResp.MyVote = vote
		resp.Surveys = append(resp.Surveys, surveyResp)
	}

	return resp, nil
}

// Vote records the caller's vote; voting again moves the vote
func (s *surveyServiceImpl) Vote(ctx context.Context, userID, surveyID int64, req *dto.VoteRequest) (*dto.SurveyResponse, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	if survey.IsClosed {
		return nil, apperrors.ErrSurveyClosed
	}

	member, err := isTripMember(ctx, s.tripRepo, s.participationRepo, userID, survey.TripID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.NewForbiddenError("Only trip members can vote")
	}

	belongs, err := s.surveyRepo.OptionBelongsToSurvey(ctx, surveyID, req.OptionID)
	if err != nil {
		return nil, err
	}
	if !belongs {
		return nil, apperrors.ErrOptionNotFound
	}

	if err := s.surveyRepo.Vote(ctx, surveyID, userID, req.OptionID); err != nil {
		s.logger.Error().Err(err).Int64("surveyID", surveyID).Int64("userID", userID).
			Msg("Failed to record vote")
		return nil, err
	}

	// Re-read for fresh tallies
	survey, err = s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToSurveyResponse(survey)
	resp.MyVote = &req.OptionID
	return &resp, nil
}

// CloseSurvey stops a survey from accepting further votes. The survey
// creator and the trip creator may close it.
func (s *surveyServiceImpl) CloseSurvey(ctx context.Context, userID, surveyID int64) error {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}

	if err := s.requireSurveyOwnership(ctx, survey, userID); err != nil {
		return err
	}

	if err := s.surveyRepo.Close(ctx, surveyID); err != nil {
		s.logger.Error().Err(err).Int64("surveyID", surveyID).Msg("Failed to close survey")
		return err
	}

	s.logger.Info().Int64("surveyID", surveyID).Msg("Survey closed")
	return nil
}

// DeleteSurvey removes a survey with its options and votes
func (s *surveyServiceImpl) DeleteSurvey(ctx context.Context, userID, surveyID int64) error {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}

	if err := s.requireSurveyOwnership(ctx, survey, userID); err != nil {
		return err
	}

	if err := s.surveyRepo.Delete(ctx, surveyID); err != nil {
		s.logger.Error().Err(err).Int64("surveyID", surveyID).Msg("Failed to delete survey")
		return err
	}

	s.logger.Info().Int64("surveyID", surveyID).Msg("Survey deleted")
	return nil
}

func (s *surveyServiceImpl) requireSurveyOwnership(ctx context.Context, survey *models.Survey, userID int64) error {
	if survey.CreatorID == userID {
		return nil
	}

	trip, err := s.tripRepo.GetByID(ctx, survey.TripID)
	if err != nil {
		return err
	}
	if trip.CreatorID != userID {
		return apperrors.NewForbiddenError("Only the survey or trip creator can manage a survey")
	}

	return nil
}
