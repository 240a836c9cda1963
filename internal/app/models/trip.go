package models

import "time"

// TripStatus is the lifecycle status a creator assigns to a trip
type TripStatus string

const (
	TripStatusOpen      TripStatus = "open"
	TripStatusClosed    TripStatus = "closed"
	TripStatusCompleted TripStatus = "completed"
)

// IsValid reports whether the status is one of the known values
func (s TripStatus) IsValid() bool {
	switch s {
	case TripStatusOpen, TripStatusClosed, TripStatusCompleted:
		return true
	}
	return false
}

// Trip represents a proposed shared journey owned by its creator
type Trip struct {
	ID                   int64      `json:"id" db:"id"`
	CreatorID            int64      `json:"creatorId" db:"creator_id"`
	Title                string     `json:"title" db:"title"`
	Description          string     `json:"description" db:"description"`
	Destination          string     `json:"destination" db:"destination"`
	Departure            string     `json:"departure" db:"departure"`
	StartDate            time.Time  `json:"startDate" db:"start_date"`
	EndDate              time.Time  `json:"endDate" db:"end_date"`
	CostPerPerson        *float64   `json:"costPerPerson,omitempty" db:"cost_per_person"`
	MinParticipants      int        `json:"minParticipants" db:"min_participants"`
	MaxParticipants      *int       `json:"maxParticipants,omitempty" db:"max_participants"`
	TransportInfo        string     `json:"transportInfo" db:"transport_info"`
	AccommodationInfo    string     `json:"accommodationInfo" db:"accommodation_info"`
	Itinerary            string     `json:"itinerary" db:"itinerary"`
	Status               TripStatus `json:"status" db:"status"`
	AcceptedParticipants int        `json:"acceptedParticipants" db:"accepted_participants"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Creator *User `json:"creator,omitempty"`
}
