package roster

import (
	"errors"
	"fmt"

	"github.com/edunir/tripshare/internal/app/models"
)

// ErrIllegalTransition is returned for any status change outside the
// participation lifecycle: pending->accepted, pending->rejected,
// accepted->left. rejected and left are terminal.
var ErrIllegalTransition = errors.New("illegal participation status transition")

// legalTransitions holds the full lifecycle. Cancelling a pending request
// is deliberately absent: cancellation is a hard delete, not a transition
// to left. left is reserved for abandoning a trip after acceptance.
var legalTransitions = map[models.ParticipationStatus][]models.ParticipationStatus{
	models.ParticipationPending:  {models.ParticipationAccepted, models.ParticipationRejected},
	models.ParticipationAccepted: {models.ParticipationLeft},
}

// ValidateTransition checks that from -> to is a legal lifecycle step.
func ValidateTransition(from, to models.ParticipationStatus) error {
	for _, allowed := range legalTransitions[from] {
		if to == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// CanDelete reports whether a participation may be removed outright.
// Only a still-pending request can be cancelled; an accepted participant
// must leave instead, keeping the left row as history.
func CanDelete(status models.ParticipationStatus) bool {
	return status == models.ParticipationPending
}

// CanAccept reports whether accepting one more participant would respect
// the trip's hard cap.
func CanAccept(trip *models.Trip) bool {
	return !IsFull(trip)
}
