package roster

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// Category classifies a trip against its capacity bounds and dates. The
// four categories partition every trip exactly once and drive which
// dashboard tab it appears under.
type Category string

const (
	// CategoryPast: the trip ended or the creator marked it completed.
	CategoryPast Category = "past"
	// CategoryFull: upcoming, roster at the hard cap.
	CategoryFull Category = "full"
	// CategoryViable: minimum headcount met, room remains.
	CategoryViable Category = "viable"
	// CategoryBelowMinimum: still recruiting toward the minimum.
	CategoryBelowMinimum Category = "below_minimum"
)

// IsPast reports whether the trip is over, either by stored status or by
// its end date. The stored status can lag behind the calendar, so the date
// check stands on its own.
func IsPast(trip *models.Trip, today time.Time) bool {
	if trip.Status == models.TripStatusCompleted {
		return true
	}
	return trip.EndDate.Before(today)
}

// IsFull reports whether accepted participants have reached the hard cap.
// A missing cap means the trip can never be full.
func IsFull(trip *models.Trip) bool {
	if trip.MaxParticipants == nil || *trip.MaxParticipants <= 0 {
		return false
	}
	return trip.AcceptedParticipants >= *trip.MaxParticipants
}

// ReachedMinimum reports whether accepted participants meet the minimum
// headcount. A missing or zero minimum is treated as "not yet met", never
// as a trivially satisfied bound.
func ReachedMinimum(trip *models.Trip) bool {
	if trip.MinParticipants <= 0 {
		return false
	}
	return trip.AcceptedParticipants >= trip.MinParticipants
}

// Categorize assigns a trip to exactly one Category. PAST wins over the
// count-driven categories; among those, the ordering FULL > VIABLE >
// BELOW_MINIMUM is monotone in the accepted count.
func Categorize(trip *models.Trip, today time.Time) Category {
	switch {
	case IsPast(trip, today):
		return CategoryPast
	case IsFull(trip):
		return CategoryFull
	case ReachedMinimum(trip):
		return CategoryViable
	default:
		return CategoryBelowMinimum
	}
}
