package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edunir/tripshare/internal/app/models"
)

func participation(id, tripID, userID int64, status models.ParticipationStatus) *models.Participation {
	return &models.Participation{ID: id, TripID: tripID, UserID: userID, Status: status}
}

func TestRelationshipOwner(t *testing.T) {
	trip := futureTrip(2, nil, 0)
	trip.CreatorID = 42

	rel, err := Relationship(42, trip, nil)

	assert.NoError(t, err)
	assert.Equal(t, RelationOwner, rel.Kind)
	assert.Nil(t, rel.Participation)
}

// The creator stays the owner even if a stray participation row exists.
func TestRelationshipOwnerWinsOverStrayRow(t *testing.T) {
	trip := futureTrip(2, nil, 0)
	trip.CreatorID = 42
	stray := []*models.Participation{participation(1, trip.ID, 42, models.ParticipationPending)}

	rel, err := Relationship(42, trip, stray)

	assert.NoError(t, err)
	assert.Equal(t, RelationOwner, rel.Kind)
}

func TestRelationshipRequester(t *testing.T) {
	trip := futureTrip(2, nil, 0)
	mine := []*models.Participation{
		participation(1, 99, 7, models.ParticipationAccepted), // other trip
		participation(2, trip.ID, 7, models.ParticipationPending),
	}

	rel, err := Relationship(7, trip, mine)

	assert.NoError(t, err)
	assert.Equal(t, RelationRequester, rel.Kind)
	assert.Equal(t, models.ParticipationPending, rel.Participation.Status)
}

func TestRelationshipStrangerNoHistory(t *testing.T) {
	trip := futureTrip(2, nil, 0)

	rel, err := Relationship(7, trip, nil)

	assert.NoError(t, err)
	assert.Equal(t, RelationStranger, rel.Kind)
}

// A rejected or left row must not lock the user out of re-requesting.
func TestRelationshipStrangerAfterRejection(t *testing.T) {
	trip := futureTrip(2, nil, 0)
	trip.ID = 10

	for _, status := range []models.ParticipationStatus{models.ParticipationRejected, models.ParticipationLeft} {
		mine := []*models.Participation{participation(1, 10, 7, status)}

		rel, err := Relationship(7, trip, mine)

		assert.NoError(t, err)
		assert.Equal(t, RelationStranger, rel.Kind, "status %s should not block re-requesting", status)
	}
}

func TestRelationshipDuplicateActiveRowsFailLoudly(t *testing.T) {
	trip := futureTrip(2, nil, 0)
	mine := []*models.Participation{
		participation(1, trip.ID, 7, models.ParticipationPending),
		participation(2, trip.ID, 7, models.ParticipationAccepted),
	}

	_, err := Relationship(7, trip, mine)

	assert.ErrorIs(t, err, ErrRosterIntegrity)
}

// Exactly one relation kind per (viewer, trip) pair.
func TestRelationshipExclusivity(t *testing.T) {
	trip := futureTrip(2, nil, 0)
	trip.CreatorID = 1

	histories := [][]*models.Participation{
		nil,
		{participation(1, trip.ID, 7, models.ParticipationPending)},
		{participation(1, trip.ID, 7, models.ParticipationAccepted)},
		{participation(1, trip.ID, 7, models.ParticipationRejected)},
		{participation(1, trip.ID, 7, models.ParticipationLeft)},
		{participation(1, trip.ID, 7, models.ParticipationRejected), participation(2, trip.ID, 7, models.ParticipationPending)},
	}

	for _, viewerID := range []int64{1, 7} {
		for _, mine := range histories {
			rel, err := Relationship(viewerID, trip, mine)
			assert.NoError(t, err)

			kinds := 0
			for _, k := range []RelationKind{RelationOwner, RelationRequester, RelationStranger} {
				if rel.Kind == k {
					kinds++
				}
			}
			assert.Equal(t, 1, kinds)
			if viewerID == trip.CreatorID {
				assert.Equal(t, RelationOwner, rel.Kind)
			}
		}
	}
}
