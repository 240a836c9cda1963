package roster

import (
	"errors"
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// Rating eligibility errors
var (
	ErrTripNotPast      = errors.New("trip is not over yet")
	ErrSelfRating       = errors.New("users cannot rate themselves")
	ErrNotRatingPair    = errors.New("ratings flow between the creator and accepted participants only")
	ErrRaterNotAccepted = errors.New("rater was not an accepted participant of this trip")
)

// RatingEligible decides whether rater may rate rated for a trip, given the
// trip's full roster. The rules:
//
//   - the trip must be past (ended or marked completed),
//   - nobody rates themselves,
//   - rating is symmetric between the creator and accepted participants;
//     participant<->participant ratings are not part of the model.
//
// Whether a rating already exists for (rater, rated, trip) is not checked
// here - that uniqueness lives in the database, not in client state.
func RatingEligible(trip *models.Trip, raterID, ratedID int64, tripRoster []*models.Participation, today time.Time) error {
	if !IsPast(trip, today) {
		return ErrTripNotPast
	}
	if raterID == ratedID {
		return ErrSelfRating
	}

	accepted := func(userID int64) bool {
		for _, p := range tripRoster {
			if p.TripID == trip.ID && p.UserID == userID && p.Status == models.ParticipationAccepted {
				return true
			}
		}
		return false
	}

	switch {
	case raterID == trip.CreatorID:
		if !accepted(ratedID) {
			return ErrNotRatingPair
		}
	case ratedID == trip.CreatorID:
		if !accepted(raterID) {
			return ErrRaterNotAccepted
		}
	default:
		return ErrNotRatingPair
	}

	return nil
}
