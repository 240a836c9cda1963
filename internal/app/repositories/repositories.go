package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	TripRepository          *TripRepository
	ParticipationRepository *ParticipationRepository
	RatingRepository        *RatingRepository
	SurveyRepository        *SurveyRepository
	ChatRepository          *ChatRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		TripRepository:          NewTripRepository(db),
		ParticipationRepository: NewParticipationRepository(db),
		RatingRepository:        NewRatingRepository(db),
		SurveyRepository:        NewSurveyRepository(db),
		ChatRepository:          NewChatRepository(db),
	}
}
