package dto

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// CreateRatingRequest represents a rating left after a trip ended
type CreateRatingRequest struct {
	RatedID int64  `json:"ratedId" binding:"required,min=1"`
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// RatingResponse represents a stored rating
type RatingResponse struct {
	ID        int64              `json:"id"`
	TripID    int64              `json:"tripId"`
	RaterID   int64              `json:"raterId"`
	RatedID   int64              `json:"ratedId"`
	Score     int                `json:"score"`
	Comment   string             `json:"comment,omitempty"`
	Rater     *UserBasicResponse `json:"rater,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// RatingListResponse represents a list of ratings received by a user
type RatingListResponse struct {
	Ratings    []RatingResponse `json:"ratings"`
	Pagination PaginationInfo   `json:"pagination"`
}

// ToRatingResponse converts a models.Rating to its DTO
func ToRatingResponse(r *models.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		TripID:    r.TripID,
		RaterID:   r.RaterID,
		RatedID:   r.RatedID,
		Score:     r.Score,
		Comment:   r.Comment,
		Rater:     ToUserBasicResponse(r.Rater),
		CreatedAt: r.CreatedAt,
	}
}
