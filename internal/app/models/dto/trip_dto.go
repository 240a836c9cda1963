package dto

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/domain/roster"
)

// --- Request DTOs ---

// CreateTripRequest represents data for creating a new trip
type CreateTripRequest struct {
	Title             string   `json:"title" binding:"required,min=3,max=200"`
	Description       string   `json:"description" binding:"max=5000"`
	Destination       string   `json:"destination" binding:"required,min=2,max=200"`
	Departure         string   `json:"departure" binding:"required,min=2,max=200"`
	StartDate         string   `json:"startDate" binding:"required" example:"2026-07-10"`
	EndDate           string   `json:"endDate" binding:"required" example:"2026-07-20"`
	CostPerPerson     *float64 `json:"costPerPerson" binding:"omitempty,min=0"`
	MinParticipants   int      `json:"minParticipants" binding:"required,min=1"`
	MaxParticipants   *int     `json:"maxParticipants" binding:"omitempty,min=1"`
	TransportInfo     string   `json:"transportInfo" binding:"max=2000"`
	AccommodationInfo string   `json:"accommodationInfo" binding:"max=2000"`
	Itinerary         string   `json:"itinerary" binding:"max=10000"`
}

// UpdateTripRequest represents data for updating an existing trip.
// All fields are optional; only non-nil values are applied.
type UpdateTripRequest struct {
	Title             *string  `json:"title" binding:"omitempty,min=3,max=200"`
	Description       *string  `json:"description" binding:"omitempty,max=5000"`
	Destination       *string  `json:"destination" binding:"omitempty,min=2,max=200"`
	Departure         *string  `json:"departure" binding:"omitempty,min=2,max=200"`
	StartDate         *string  `json:"startDate" example:"2026-07-10"`
	EndDate           *string  `json:"endDate" example:"2026-07-20"`
	CostPerPerson     *float64 `json:"costPerPerson" binding:"omitempty,min=0"`
	MinParticipants   *int     `json:"minParticipants" binding:"omitempty,min=1"`
	MaxParticipants   *int     `json:"maxParticipants" binding:"omitempty,min=1"`
	TransportInfo     *string  `json:"transportInfo" binding:"omitempty,max=2000"`
	AccommodationInfo *string  `json:"accommodationInfo" binding:"omitempty,max=2000"`
	Itinerary         *string  `json:"itinerary" binding:"omitempty,max=10000"`
	Status            *string  `json:"status" binding:"omitempty,oneof=open closed completed"`
}

// TripFilterRequest represents filter parameters for the trip listing
type TripFilterRequest struct {
	Status        string  `form:"status" binding:"omitempty,oneof=open closed completed"`
	Category      string  `form:"category" binding:"omitempty,oneof=past full viable below_minimum"`
	Destination   string  `form:"destination"`
	Departure     string  `form:"departure"`
	CreatorID     *int64  `form:"creatorId" binding:"omitempty,min=1"`
	CreatorName   string  `form:"creatorName" binding:"omitempty,max=100"`
	MaxCost       *float64 `form:"maxCost" binding:"omitempty,min=0"`
	StartDateFrom string  `form:"startDateFrom" example:"2026-07-01"`
	StartDateTo   string  `form:"startDateTo" example:"2026-08-01"`
	Page          int     `form:"page,default=1" binding:"min=1"`
	PageSize      int     `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// ViewerContext tells the authenticated caller where they stand with
// respect to a trip and which actions are currently available to them.
type ViewerContext struct {
	Relation        string   `json:"relation" example:"requester" enums:"owner,requester,stranger"`
	ParticipationID *int64   `json:"participationId,omitempty"`
	Status          string   `json:"status,omitempty" example:"pending"`
	AllowedActions  []string `json:"allowedActions"`
}

// TripResponse represents a trip with derived capacity category
type TripResponse struct {
	ID                   int64              `json:"id"`
	Title                string             `json:"title"`
	Description          string             `json:"description,omitempty"`
	Destination          string             `json:"destination"`
	Departure            string             `json:"departure"`
	StartDate            time.Time          `json:"startDate"`
	EndDate              time.Time          `json:"endDate"`
	CostPerPerson        *float64           `json:"costPerPerson,omitempty"`
	MinParticipants      int                `json:"minParticipants"`
	MaxParticipants      *int               `json:"maxParticipants,omitempty"`
	TransportInfo        string             `json:"transportInfo,omitempty"`
	AccommodationInfo    string             `json:"accommodationInfo,omitempty"`
	Itinerary            string             `json:"itinerary,omitempty"`
	Status               string             `json:"status" enums:"open,closed,completed"`
	Category             string             `json:"category" enums:"past,full,viable,below_minimum"`
	AcceptedParticipants int                `json:"acceptedParticipants"`
	Creator              *UserBasicResponse `json:"creator,omitempty"`
	Viewer               *ViewerContext     `json:"viewer,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// TripListResponse represents a paginated list of trips
type TripListResponse struct {
	Trips      []TripResponse `json:"trips"`
	Pagination PaginationInfo `json:"pagination"`
}

// ToTripResponse converts a models.Trip to a TripResponse, deriving the
// capacity category as of today.
func ToTripResponse(trip *models.Trip, today time.Time) TripResponse {
	return TripResponse{
		ID:                   trip.ID,
		Title:                trip.Title,
		Description:          trip.Description,
		Destination:          trip.Destination,
		Departure:            trip.Departure,
		StartDate:            trip.StartDate,
		EndDate:              trip.EndDate,
		CostPerPerson:        trip.CostPerPerson,
		MinParticipants:      trip.MinParticipants,
		MaxParticipants:      trip.MaxParticipants,
		TransportInfo:        trip.TransportInfo,
		AccommodationInfo:    trip.AccommodationInfo,
		Itinerary:            trip.Itinerary,
		Status:               string(trip.Status),
		Category:             string(roster.Categorize(trip, today)),
		AcceptedParticipants: trip.AcceptedParticipants,
		Creator:              ToUserBasicResponse(trip.Creator),
		CreatedAt:            trip.CreatedAt,
		UpdatedAt:            trip.UpdatedAt,
	}
}

// NewViewerContext builds the viewer block from a roster relation
func NewViewerContext(rel roster.Relation, trip *models.Trip, today time.Time) *ViewerContext {
	vc := &ViewerContext{
		Relation:       string(rel.Kind),
		AllowedActions: make([]string, 0),
	}
	if rel.Participation != nil {
		vc.ParticipationID = &rel.Participation.ID
		vc.Status = string(rel.Participation.Status)
	}
	for _, action := range roster.AllowedActions(rel, trip, today) {
		vc.AllowedActions = append(vc.AllowedActions, string(action))
	}
	return vc
}
