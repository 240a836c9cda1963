package roster

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// Action is something the viewer may currently do with a trip
type Action string

const (
	// ActionRequest: send a join request.
	ActionRequest Action = "request"
	// ActionCancel: delete a still-pending request.
	ActionCancel Action = "cancel"
	// ActionLeave: abandon the trip after acceptance.
	ActionLeave Action = "leave"
	// ActionRate: score co-travelers of a past trip.
	ActionRate Action = "rate"
	// ActionManage: accept/reject requests, edit the trip (owner only).
	ActionManage Action = "manage"
)

// AllowedActions lists the actions currently valid for the viewer's
// relation to a trip. The list mirrors what the trip detail view may
// offer; eligibility for individual rating targets still goes through
// RatingEligible.
func AllowedActions(rel Relation, trip *models.Trip, today time.Time) []Action {
	past := IsPast(trip, today)

	var actions []Action
	switch rel.Kind {
	case RelationOwner:
		actions = append(actions, ActionManage)
		if past {
			actions = append(actions, ActionRate)
		}

	case RelationRequester:
		switch rel.Participation.Status {
		case models.ParticipationPending:
			// A pending request stays cancellable even after the trip
			// dates pass, matching CanDelete.
			actions = append(actions, ActionCancel)
		case models.ParticipationAccepted:
			if past {
				actions = append(actions, ActionRate)
			} else {
				actions = append(actions, ActionLeave)
			}
		}

	case RelationStranger:
		if !past && trip.Status == models.TripStatusOpen && !IsFull(trip) {
			actions = append(actions, ActionRequest)
		}
	}

	return actions
}
