package models

import "time"

// Survey is a simple poll attached to a trip
type Survey struct {
	ID        int64     `json:"id" db:"id"`
	TripID    int64     `json:"tripId" db:"trip_id"`
	CreatorID int64     `json:"creatorId" db:"creator_id"`
	Question  string    `json:"question" db:"question"`
	IsClosed  bool      `json:"isClosed" db:"is_closed"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Creator *User           `json:"creator,omitempty"`
	Options []*SurveyOption `json:"options,omitempty"`
}

// SurveyOption is one answer choice of a survey
type SurveyOption struct {
	ID       int64  `json:"id" db:"id"`
	SurveyID int64  `json:"surveyId" db:"survey_id"`
	Text     string `json:"text" db:"option_text"`
	// VoteCount is derived from survey_votes, not stored
	VoteCount int `json:"voteCount" db:"-"`
}

// SurveyVote records a user's single vote in a survey.
// Uniqueness of (survey_id, user_id) is a database constraint; re-voting
// moves the vote to the new option.
type SurveyVote struct {
	ID        int64     `json:"id" db:"id"`
	SurveyID  int64     `json:"surveyId" db:"survey_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	OptionID  int64     `json:"optionId" db:"option_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
