package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edunir/tripshare/internal/app/models"
)

func TestValidateTransition(t *testing.T) {
	all := []models.ParticipationStatus{
		models.ParticipationPending,
		models.ParticipationAccepted,
		models.ParticipationRejected,
		models.ParticipationLeft,
	}

	legal := map[[2]models.ParticipationStatus]bool{
		{models.ParticipationPending, models.ParticipationAccepted}: true,
		{models.ParticipationPending, models.ParticipationRejected}: true,
		{models.ParticipationAccepted, models.ParticipationLeft}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			err := ValidateTransition(from, to)
			if legal[[2]models.ParticipationStatus{from, to}] {
				assert.NoError(t, err, "%s -> %s should be legal", from, to)
			} else {
				assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s should be illegal", from, to)
			}
		}
	}
}

// pending -> left must go through deletion, never a status change.
func TestPendingCannotBecomeLeft(t *testing.T) {
	assert.ErrorIs(t, ValidateTransition(models.ParticipationPending, models.ParticipationLeft), ErrIllegalTransition)
	assert.True(t, CanDelete(models.ParticipationPending))
}

func TestTerminalStatesCannotBeDeleted(t *testing.T) {
	assert.False(t, CanDelete(models.ParticipationAccepted))
	assert.False(t, CanDelete(models.ParticipationRejected))
	assert.False(t, CanDelete(models.ParticipationLeft))
}

func TestCanAcceptRespectsCap(t *testing.T) {
	assert.True(t, CanAccept(futureTrip(2, intPtr(4), 3)))
	assert.False(t, CanAccept(futureTrip(2, intPtr(4), 4)))
	assert.True(t, CanAccept(futureTrip(2, nil, 1000)))
}
