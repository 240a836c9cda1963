package services

import (
	"github.com/rs/zerolog"

	"github.com/edunir/tripshare/internal/app/repositories"
	"github.com/edunir/tripshare/internal/db"
	"github.com/edunir/tripshare/internal/pkg/auth"
	"github.com/edunir/tripshare/internal/pkg/websocket"
)

// Services holds all the service instances
type Services struct {
	AuthService          AuthService
	UserService          UserService
	TripService          TripService
	ParticipationService ParticipationService
	RatingService        RatingService
	SurveyService        SurveyService
	ChatService          ChatService
}

// NewServices wires all services with their dependencies
func NewServices(
	repos *repositories.Repositories,
	database *db.PostgresDB,
	jwtService *auth.JWTService,
	wsHub *websocket.Hub,
	logger zerolog.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			jwtService,
			logger.With().Str("service", "auth").Logger(),
		),
		UserService: NewUserService(
			repos.UserRepository,
			repos.RatingRepository,
			logger.With().Str("service", "user").Logger(),
		),
		TripService: NewTripService(
			repos.TripRepository,
			repos.ParticipationRepository,
			logger.With().Str("service", "trip").Logger(),
		),
		ParticipationService: NewParticipationService(
			repos.ParticipationRepository,
			repos.TripRepository,
			database,
			logger.With().Str("service", "participation").Logger(),
		),
		RatingService: NewRatingService(
			repos.RatingRepository,
			repos.TripRepository,
			repos.ParticipationRepository,
			repos.UserRepository,
			database,
			logger.With().Str("service", "rating").Logger(),
		),
		SurveyService: NewSurveyService(
			repos.SurveyRepository,
			repos.TripRepository,
			repos.ParticipationRepository,
			database,
			logger.With().Str("service", "survey").Logger(),
		),
		ChatService: NewChatService(
			repos.ChatRepository,
			repos.TripRepository,
			repos.ParticipationRepository,
			wsHub,
			logger.With().Str("service", "chat").Logger(),
		),
	}
}
