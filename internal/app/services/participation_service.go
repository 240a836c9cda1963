package services

import (
	"context"

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

// ParticipationService defines the interface for participation lifecycle operations
type ParticipationService interface {
	RequestToJoin(ctx context.Context, userID, tripID int64, req *dto.CreateParticipationRequest) (*dto.ParticipationResponse, error)
	GetTripParticipations(ctx context.Context, userID, tripID int64, filter *dto.ParticipationFilterRequest) (*dto.ParticipationListResponse, error)
	GetParticipation(ctx context.Context, userID, participationID int64) (*dto.ParticipationResponse, error)
	GetMyRequests(ctx context.Context, userID int64, status string, page, pageSize int) (*dto.ParticipationListResponse, error)
	GetRequestsForMyTrips(ctx context.Context, creatorID int64, status string, page, pageSize int) (*dto.ParticipationListResponse, error)
	UpdateStatus(ctx context.Context, userID, participationID int64, newStatus models.ParticipationStatus) (*dto.ParticipationResponse, error)
	CancelRequest(ctx context.Context, userID, participationID int64) error
}

// participationServiceImpl implements ParticipationService
type participationServiceImpl struct {
	participationRepo *repositories.ParticipationRepository
	tripRepo          *repositories.TripRepository
	database          *db.PostgresDB
	logger            zerolog.Logger
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(
	participationRepo *repositories.ParticipationRepository,
	tripRepo *repositories.TripRepository,
	database *db.PostgresDB,
	logger zerolog.Logger,
) ParticipationService {
	return &participationServiceImpl{
		participationRepo: participationRepo,
		tripRepo:          tripRepo,
		database:          database,
		logger:            logger,
	}
}

// RequestToJoin creates a pending participation for the caller
func (s *participationServiceImpl) RequestToJoin(ctx context.Context, userID, tripID int64, req *dto.CreateParticipationRequest) (*dto.ParticipationResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.CreatorID == userID {
		return nil, apperrors.ErrOwnTrip
	}
	if trip.Status != models.TripStatusOpen {
		return nil, apperrors.ErrTripNotOpen
	}

	today := helpers.Today()
	if roster.IsPast(trip, today) {
		return nil, apperrors.ErrTripOver
	}
	if roster.IsFull(trip) {
		return nil, apperrors.ErrTripFull
	}

	mine, err := s.participationRepo.GetByTripAndUser(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	rel, err := roster.Relationship(userID, trip, mine)
	if err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Int64("userID", userID).
			Msg("Roster integrity violation")
		return nil, err
	}
	if rel.Kind == roster.RelationRequester {
		return nil, apperrors.ErrAlreadyRequested
	}

	participation := &models.Participation{
		TripID:  tripID,
		UserID:  userID,
		Status:  models.ParticipationPending,
		Message: req.Message,
	}

	if _, err := s.participationRepo.Create(ctx, participation); err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Int64("userID", userID).
			Msg("Failed to create participation")
		return nil, err
	}

	s.logger.Info().Int64("participationID", participation.ID).
		Int64("tripID", tripID).Int64("userID", userID).Msg("Join request created")

	resp := dto.ToParticipationResponse(participation)
	return &resp, nil
}

// GetTripParticipations lists a trip's roster; only the creator may see it
func (s *participationServiceImpl) GetTripParticipations(ctx context.Context, userID, tripID int64, filter *dto.ParticipationFilterRequest) (*dto.ParticipationListResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if trip.CreatorID != userID {
		return nil, apperrors.NewForbiddenError("Only the trip creator can list participations")
	}

	participations, total, err := s.participationRepo.GetByTrip(ctx, tripID, filter.Status, filter.Page, filter.PageSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to list trip participations")
		return nil, err
	}

	return buildParticipationList(participations, total, filter.Page, filter.PageSize), nil
}

// GetMyRequests lists the participations the caller has requested
func (s *participationServiceImpl) GetMyRequests(ctx context.Context, userID int64, status string, page, pageSize int) (*dto.ParticipationListResponse, error) {
	participations, total, err := s.participationRepo.GetByUser(ctx, userID, status, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list user requests")
		return nil, err
	}

	return buildParticipationList(participations, total, page, pageSize), nil
}

// GetRequestsForMyTrips lists the requests awaiting the caller as creator
func (s *participationServiceImpl) GetRequestsForMyTrips(ctx context.Context, creatorID int64, status string, page, pageSize int) (*dto.ParticipationListResponse, error) {
	participations, total, err := s.participationRepo.GetForCreator(ctx, creatorID, status, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("creatorID", creatorID).Msg("Failed to list creator requests")
		return nil, err
	}

	return buildParticipationList(participations, total, page, pageSize), nil
}

// UpdateStatus moves a participation through its lifecycle. Accept and
// reject belong to the trip creator; leave belongs to the participant.
// The trip row is locked for the duration so capacity decisions serialize,
// and the participation update is guarded by the status the transition was
// validated against, so two concurrent decisions on the same request cannot
// both adjust the counter.
func (s *participationServiceImpl) UpdateStatus(ctx context.Context, userID, participationID int64, newStatus models.ParticipationStatus) (*dto.ParticipationResponse, error) {
	participation, err := s.participationRepo.GetByID(ctx, participationID)
	if err != nil {
		return nil, err
	}

	if err := roster.ValidateTransition(participation.Status, newStatus); err != nil {
		return nil, err
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		trip, err := s.tripRepo.GetByIDForUpdate(ctx, tx, participation.TripID)
		if err != nil {
			return err
		}

		switch newStatus {
		case models.ParticipationAccepted:
			if trip.CreatorID != userID {
				return apperrors.NewForbiddenError("Only the trip creator can accept requests")
			}
			if !roster.CanAccept(trip) {
				return apperrors.ErrTripFull
			}
			if err := s.tripRepo.AdjustAcceptedCount(ctx, tx, trip.ID, +1); err != nil {
				return err
			}

		case models.ParticipationRejected:
			if trip.CreatorID != userID {
				return apperrors.NewForbiddenError("Only the trip creator can reject requests")
			}

		case models.ParticipationLeft:
			if participation.UserID != userID {
				return apperrors.NewForbiddenError("Only the participant can leave a trip")
			}
			if err := s.tripRepo.AdjustAcceptedCount(ctx, tx, trip.ID, -1); err != nil {
				return err
			}

		default:
			return roster.ErrIllegalTransition
		}

		return s.participationRepo.UpdateStatus(ctx, tx, participationID, participation.Status, newStatus)
	})
	if err != nil {
		return nil, err
	}

	participation.Status = newStatus

	s.logger.Info().Int64("participationID", participationID).
		Str("status", string(newStatus)).Msg("Participation status updated")

	resp := dto.ToParticipationResponse(participation)
	return &resp, nil
}

// GetParticipation returns a single participation, visible to the
// requester and the trip's creator.
func (s *participationServiceImpl) GetParticipation(ctx context.Context, userID, participationID int64) (*dto.ParticipationResponse, error) {
	participation, err := s.participationRepo.GetByID(ctx, participationID)
	if err != nil {
		return nil, err
	}

	if participation.UserID != userID {
		trip, err := s.tripRepo.GetByID(ctx, participation.TripID)
		if err != nil {
			return nil, err
		}
		if trip.CreatorID != userID {
			return nil, apperrors.NewForbiddenError("Only the requester and the trip creator can view this request")
		}
	}

	resp := dto.ToParticipationResponse(participation)
	return &resp, nil
}

// CancelRequest deletes a pending request; cancel is the requester's
// withdrawal and removes the row entirely.
func (s *participationServiceImpl) CancelRequest(ctx context.Context, userID, participationID int64) error {
	participation, err := s.participationRepo.GetByID(ctx, participationID)
	if err != nil {
		return err
	}

	if participation.UserID != userID {
		return apperrors.NewForbiddenError("Only the requester can cancel a request")
	}
	if !roster.CanDelete(participation.Status) {
		return roster.ErrIllegalTransition
	}

	if err := s.participationRepo.Delete(ctx, participationID); err != nil {
		s.logger.Error().Err(err).Int64("participationID", participationID).
			Msg("Failed to delete participation")
		return err
	}

	s.logger.Info().Int64("participationID", participationID).Msg("Join request cancelled")
	return nil
}

func buildParticipationList(participations []*models.Participation, total int64, page, pageSize int) *dto.ParticipationListResponse {
	resp := &dto.ParticipationListResponse{
		Participations: make([]dto.ParticipationResponse, 0, len(participations)),
		Pagination:     helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, p := range participations {
		resp.Participations = append(resp.Participations, dto.ToParticipationResponse(p))
	}
	return resp
}
