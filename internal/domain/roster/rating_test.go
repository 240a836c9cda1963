package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edunir/tripshare/internal/app/models"
)

func pastTripWithRoster() (*models.Trip, []*models.Participation) {
	trip := futureTrip(2, nil, 2)
	trip.ID = 5
	trip.CreatorID = 1
	trip.EndDate = today.AddDate(0, 0, -1)

	tripRoster := []*models.Participation{
		participation(1, 5, 2, models.ParticipationAccepted),
		participation(2, 5, 3, models.ParticipationAccepted),
		participation(3, 5, 4, models.ParticipationRejected),
	}
	return trip, tripRoster
}

func TestRatingEligibleCreatorRatesParticipant(t *testing.T) {
	trip, tripRoster := pastTripWithRoster()
	assert.NoError(t, RatingEligible(trip, 1, 2, tripRoster, today))
}

func TestRatingEligibleParticipantRatesCreator(t *testing.T) {
	trip, tripRoster := pastTripWithRoster()
	assert.NoError(t, RatingEligible(trip, 2, 1, tripRoster, today))
}

func TestRatingIneligibleBeforeTripEnds(t *testing.T) {
	trip, tripRoster := pastTripWithRoster()
	trip.EndDate = today.AddDate(0, 1, 0)
	trip.Status = models.TripStatusOpen

	assert.ErrorIs(t, RatingEligible(trip, 1, 2, tripRoster, today), ErrTripNotPast)
}

func TestRatingIneligibleSelf(t *testing.T) {
	trip, tripRoster := pastTripWithRoster()
	assert.ErrorIs(t, RatingEligible(trip, 1, 1, tripRoster, today), ErrSelfRating)
}

func TestRatingIneligibleParticipantToParticipant(t *testing.T) {
	trip, tripRoster := pastTripWithRoster()
	assert.ErrorIs(t, RatingEligible(trip, 2, 3, tripRoster, today), ErrNotRatingPair)
}

func TestRatingIneligibleRejectedParticipant(t *testing.T) {
	trip, tripRoster := pastTripWithRoster()
	assert.ErrorIs(t, RatingEligible(trip, 1, 4, tripRoster, today), ErrNotRatingPair)
	assert.ErrorIs(t, RatingEligible(trip, 4, 1, tripRoster, today), ErrRaterNotAccepted)
}

func TestAllowedActions(t *testing.T) {
	trip := futureTrip(2, intPtr(4), 1)
	trip.CreatorID = 1

	tests := []struct {
		name string
		rel  Relation
		trip *models.Trip
		want []Action
	}{
		{"owner of upcoming trip", Relation{Kind: RelationOwner}, trip, []Action{ActionManage}},
		{"stranger on open trip", Relation{Kind: RelationStranger}, trip, []Action{ActionRequest}},
		{"stranger on closed trip", Relation{Kind: RelationStranger}, func() *models.Trip {
			tr := futureTrip(2, intPtr(4), 1)
			tr.Status = models.TripStatusClosed
			return tr
		}(), nil},
		{"stranger on full trip", Relation{Kind: RelationStranger}, futureTrip(2, intPtr(4), 4), nil},
		{"pending requester", Relation{
			Kind:          RelationRequester,
			Participation: participation(1, 1, 7, models.ParticipationPending),
		}, trip, []Action{ActionCancel}},
		{"accepted requester", Relation{
			Kind:          RelationRequester,
			Participation: participation(1, 1, 7, models.ParticipationAccepted),
		}, trip, []Action{ActionLeave}},
		{"pending requester, past trip", Relation{
			Kind:          RelationRequester,
			Participation: participation(1, 1, 7, models.ParticipationPending),
		}, func() *models.Trip {
			tr := futureTrip(2, intPtr(4), 1)
			tr.EndDate = today.AddDate(0, 0, -1)
			return tr
		}(), []Action{ActionCancel}},
		{"accepted requester, past trip", Relation{
			Kind:          RelationRequester,
			Participation: participation(1, 1, 7, models.ParticipationAccepted),
		}, func() *models.Trip {
			tr := futureTrip(2, intPtr(4), 4)
			tr.EndDate = today.AddDate(0, 0, -1)
			return tr
		}(), []Action{ActionRate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedActions(tt.rel, tt.trip, today))
		})
	}
}
