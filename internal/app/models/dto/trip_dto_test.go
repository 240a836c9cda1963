package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/domain/roster"
)

func intPtr(v int) *int { return &v }

func sampleTrip(accepted int, max *int, endOffsetDays int) *models.Trip {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &models.Trip{
		ID:                   5,
		CreatorID:            9,
		Title:                "Coastal road trip",
		Destination:          "Cádiz",
		Departure:            "Sevilla",
		StartDate:            today.AddDate(0, 0, endOffsetDays-3),
		EndDate:              today.AddDate(0, 0, endOffsetDays),
		MinParticipants:      2,
		MaxParticipants:      max,
		Status:               models.TripStatusOpen,
		AcceptedParticipants: accepted,
		Creator:              &models.User{ID: 9, Name: "Marta"},
	}
}

func TestToTripResponseDerivesCategory(t *testing.T) {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		trip *models.Trip
		want string
	}{
		{"past trip", sampleTrip(3, intPtr(4), -1), "past"},
		{"full trip", sampleTrip(4, intPtr(4), 30), "full"},
		{"viable trip", sampleTrip(2, intPtr(4), 30), "viable"},
		{"below minimum", sampleTrip(1, intPtr(4), 30), "below_minimum"},
		{"no cap never full", sampleTrip(50, nil, 30), "viable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ToTripResponse(tt.trip, today)
			assert.Equal(t, tt.want, resp.Category)
		})
	}
}

func TestToTripResponseIncludesCreator(t *testing.T) {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	resp := ToTripResponse(sampleTrip(2, intPtr(4), 30), today)

	require.NotNil(t, resp.Creator)
	assert.Equal(t, int64(9), resp.Creator.ID)
	assert.Equal(t, "Marta", resp.Creator.Name)
	assert.Nil(t, resp.Viewer, "viewer block is attached separately")
}

func TestNewViewerContextForOwner(t *testing.T) {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := sampleTrip(2, intPtr(4), 30)

	rel, err := roster.Relationship(trip.CreatorID, trip, nil)
	require.NoError(t, err)

	vc := NewViewerContext(rel, trip, today)
	assert.Equal(t, "owner", vc.Relation)
	assert.Nil(t, vc.ParticipationID)
	assert.Contains(t, vc.AllowedActions, "manage")
	assert.NotContains(t, vc.AllowedActions, "request")
}

func TestNewViewerContextForPendingRequester(t *testing.T) {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := sampleTrip(2, intPtr(4), 30)

	mine := []*models.Participation{{ID: 77, TripID: trip.ID, UserID: 3, Status: models.ParticipationPending}}
	rel, err := roster.Relationship(3, trip, mine)
	require.NoError(t, err)

	vc := NewViewerContext(rel, trip, today)
	assert.Equal(t, "requester", vc.Relation)
	require.NotNil(t, vc.ParticipationID)
	assert.Equal(t, int64(77), *vc.ParticipationID)
	assert.Equal(t, "pending", vc.Status)
	assert.Contains(t, vc.AllowedActions, "cancel")
}

func TestNewViewerContextForStranger(t *testing.T) {
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := sampleTrip(2, intPtr(4), 30)

	rel, err := roster.Relationship(3, trip, nil)
	require.NoError(t, err)

	vc := NewViewerContext(rel, trip, today)
	assert.Equal(t, "stranger", vc.Relation)
	assert.Empty(t, vc.Status)
	assert.Contains(t, vc.AllowedActions, "request")
}
