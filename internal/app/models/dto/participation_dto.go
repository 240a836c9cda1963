package dto

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// --- Request DTOs ---

// CreateParticipationRequest represents a request to join a trip
type CreateParticipationRequest struct {
	Message string `json:"message" binding:"max=1000"`
}

// UpdateParticipationStatusRequest represents the creator's decision on a
// pending request, or a participant leaving an accepted one.
type UpdateParticipationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected left"`
}

// ParticipationFilterRequest represents filter parameters for listing
// participations of a trip.
type ParticipationFilterRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending accepted rejected left"`
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// ParticipationResponse represents a participation with its requester
type ParticipationResponse struct {
	ID        int64              `json:"id"`
	TripID    int64              `json:"tripId"`
	UserID    int64              `json:"userId"`
	Status    string             `json:"status" enums:"pending,accepted,rejected,left"`
	Message   string             `json:"message,omitempty"`
	User      *UserBasicResponse `json:"user,omitempty"`
	Trip      *TripResponse      `json:"trip,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ParticipationListResponse represents a paginated list of participations
type ParticipationListResponse struct {
	Participations []ParticipationResponse `json:"participations"`
	Pagination     PaginationInfo          `json:"pagination"`
}

// ToParticipationResponse converts a models.Participation to its DTO
func ToParticipationResponse(p *models.Participation) ParticipationResponse {
	resp := ParticipationResponse{
		ID:        p.ID,
		TripID:    p.TripID,
		UserID:    p.UserID,
		Status:    string(p.Status),
		Message:   p.Message,
		User:      ToUserBasicResponse(p.User),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Trip != nil {
		trip := ToTripResponse(p.Trip, time.Now().UTC())
		resp.Trip = &trip
	}
	return resp
}
