// Package roster owns the participation lifecycle rules for trips: how a
// viewer relates to a trip, how a trip classifies against its capacity
// bounds, which status transitions are legal, and who may rate whom once a
// trip is over. Everything here is pure - callers hand in already-fetched
// records and get classifications back; no I/O happens in this package.
package roster

import (
	"errors"
	"fmt"

	"github.com/edunir/tripshare/internal/app/models"
)

// ErrRosterIntegrity signals that the backend invariant "at most one active
// participation per (trip, user)" is broken. Callers should surface it as a
// data-integrity failure rather than pick an arbitrary row.
var ErrRosterIntegrity = errors.New("multiple active participations for the same trip and user")

// RelationKind describes the viewer's relationship to a trip
type RelationKind string

const (
	RelationOwner     RelationKind = "owner"
	RelationRequester RelationKind = "requester"
	RelationStranger  RelationKind = "stranger"
)

// Relation is the viewer's relationship to a trip. Participation is set
// only for RelationRequester and points at the viewer's active record.
type Relation struct {
	Kind          RelationKind
	Participation *models.Participation
}

// Relationship derives the viewer's relationship to a trip from the
// viewer's own participation records. Only active records (pending or
// accepted) count: a viewer whose history holds nothing but rejected or
// left rows is a stranger again and free to re-request.
//
// The creator is always the owner, even if a stray participation row
// exists for them.
func Relationship(viewerID int64, trip *models.Trip, mine []*models.Participation) (Relation, error) {
	if trip.CreatorID == viewerID {
		return Relation{Kind: RelationOwner}, nil
	}

	var active *models.Participation
	for _, p := range mine {
		if p.TripID != trip.ID || p.UserID != viewerID {
			continue
		}
		if !p.Status.IsActive() {
			continue
		}
		if active != nil {
			return Relation{}, fmt.Errorf("%w: trip %d, user %d", ErrRosterIntegrity, trip.ID, viewerID)
		}
		active = p
	}

	if active == nil {
		return Relation{Kind: RelationStranger}, nil
	}
	return Relation{Kind: RelationRequester, Participation: active}, nil
}
