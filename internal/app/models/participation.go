package models

import "time"

// ParticipationStatus is the lifecycle status of a join request
type ParticipationStatus string

const (
	ParticipationPending  ParticipationStatus = "pending"
	ParticipationAccepted ParticipationStatus = "accepted"
	ParticipationRejected ParticipationStatus = "rejected"
	ParticipationLeft     ParticipationStatus = "left"
)

// IsValid reports whether the status is one of the known values
func (s ParticipationStatus) IsValid() bool {
	switch s {
	case ParticipationPending, ParticipationAccepted, ParticipationRejected, ParticipationLeft:
		return true
	}
	return false
}

// IsActive reports whether the participation still binds the user to the
// trip. rejected and left are terminal and leave the user free to re-request.
func (s ParticipationStatus) IsActive() bool {
	return s == ParticipationPending || s == ParticipationAccepted
}

// Participation is one user's request to join a trip and its lifecycle
type Participation struct {
	ID        int64               `json:"id" db:"id"`
	TripID    int64               `json:"tripId" db:"trip_id"`
	UserID    int64               `json:"userId" db:"user_id"`
	Status    ParticipationStatus `json:"status" db:"status"`
	Message   string              `json:"message" db:"message"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" db:"updated_at"`

	// Related entities
	User *User `json:"user,omitempty"`
	Trip *Trip `json:"trip,omitempty"`
}
