package models

import "time"

// Rating score bounds. The historical schema wavered between 1-5 and 1-10;
// 1-5 is the bound the backend enforces.
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is one user's score of a co-traveler for a completed trip.
// Uniqueness of (trip_id, rater_id, rated_id) is a database constraint.
type Rating struct {
	ID        int64     `json:"id" db:"id"`
	TripID    int64     `json:"tripId" db:"trip_id"`
	RaterID   int64     `json:"raterId" db:"rater_id"`
	RatedID   int64     `json:"ratedId" db:"rated_id"`
	Score     int       `json:"score" db:"score"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Rater *User `json:"rater,omitempty"`
	Rated *User `json:"rated,omitempty"`
}
