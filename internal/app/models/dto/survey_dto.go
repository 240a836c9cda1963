package dto

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// --- Request DTOs ---

// CreateSurveyRequest represents a new poll for a trip
type CreateSurveyRequest struct {
	Question string   `json:"question" binding:"required,min=3,max=500"`
	Options  []string `json:"options" binding:"required,min=2,max=10,dive,required,max=200"`
}

// VoteRequest represents a vote for a survey option. Voting again moves
// the vote to the new option.
type VoteRequest struct {
	OptionID int64 `json:"optionId" binding:"required,min=1"`
}

// --- Response DTOs ---

// SurveyOptionResponse represents one answer choice with its tally
type SurveyOptionResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	VoteCount int    `json:"voteCount"`
}

// SurveyResponse represents a survey with its options
type SurveyResponse struct {
	ID          int64                  `json:"id"`
	TripID      int64                  `json:"tripId"`
	CreatorID   int64                  `json:"creatorId"`
	Question    string                 `json:"question"`
	IsClosed    bool                   `json:"isClosed"`
	Options     []SurveyOptionResponse `json:"options"`
	MyVote      *int64                 `json:"myVote,omitempty"` // option ID the caller voted for
	TotalVotes  int                    `json:"totalVotes"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// SurveyListResponse represents all surveys of a trip
type SurveyListResponse struct {
	Surveys []SurveyResponse `json:"surveys"`
}

// ToSurveyResponse converts a models.Survey to its DTO
func ToSurveyResponse(s *models.Survey) SurveyResponse {
	resp := SurveyResponse{
		ID:        s.ID,
		TripID:    s.TripID,
		CreatorID: s.CreatorID,
		Question:  s.Question,
		IsClosed:  s.IsClosed,
		Options:   make([]SurveyOptionResponse, 0, len(s.Options)),
		CreatedAt: s.CreatedAt,
	}
	for _, opt := range s.Options {
		resp.Options = append(resp.Options, SurveyOptionResponse{
			ID:        opt.ID,
			Text:      opt.Text,
			VoteCount: opt.VoteCount,
		})
		resp.TotalVotes += opt.VoteCount
	}
	return resp
}
