package repositories

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunir/tripshare/internal/app/models"
)

// The status update must only apply when the row still holds the status the
// transition was validated against; a concurrent accept of the same pending
// request must affect zero rows and fail instead of incrementing the trip
// counter a second time.
func TestStatusTransitionGuardsPreviousStatus(t *testing.T) {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sql, args, err := buildStatusTransition(sb, 7, models.ParticipationPending, models.ParticipationAccepted)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE participations SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4", sql)
	require.Len(t, args, 4)
	assert.Equal(t, models.ParticipationAccepted, args[0])
	assert.Equal(t, int64(7), args[2])
	assert.Equal(t, models.ParticipationPending, args[3])
}
