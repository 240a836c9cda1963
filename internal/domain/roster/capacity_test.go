package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edunir/tripshare/internal/app/models"
)

var today = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func futureTrip(min int, max *int, accepted int) *models.Trip {
	return &models.Trip{
		ID:                   1,
		CreatorID:            10,
		MinParticipants:      min,
		MaxParticipants:      max,
		AcceptedParticipants: accepted,
		Status:               models.TripStatusOpen,
		StartDate:            today.AddDate(0, 1, 0),
		EndDate:              today.AddDate(0, 1, 7),
	}
}

func intPtr(v int) *int { return &v }

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		trip *models.Trip
		want Category
	}{
		{"below minimum", futureTrip(4, intPtr(6), 3), CategoryBelowMinimum},
		{"minimum met, room remains", futureTrip(4, intPtr(6), 4), CategoryViable},
		{"at hard cap", futureTrip(4, intPtr(6), 6), CategoryFull},
		{"over hard cap still full", futureTrip(4, intPtr(6), 7), CategoryFull},
		{"no cap never full", futureTrip(4, nil, 100), CategoryViable},
		{"zero minimum never viable", futureTrip(0, nil, 3), CategoryBelowMinimum},
		{"completed status wins over counts", func() *models.Trip {
			tr := futureTrip(4, intPtr(6), 6)
			tr.Status = models.TripStatusCompleted
			return tr
		}(), CategoryPast},
		{"past end date wins over counts", func() *models.Trip {
			tr := futureTrip(4, intPtr(6), 2)
			tr.EndDate = today.AddDate(0, 0, -1)
			return tr
		}(), CategoryPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.trip, today))
		})
	}
}

// Every well-formed trip lands in exactly one category.
func TestCategorizePartition(t *testing.T) {
	caps := []*int{nil, intPtr(0), intPtr(1), intPtr(4), intPtr(6)}
	statuses := []models.TripStatus{models.TripStatusOpen, models.TripStatusClosed, models.TripStatusCompleted}
	ends := []time.Time{today.AddDate(0, 0, -1), today.AddDate(0, 1, 0)}

	for _, min := range []int{0, 1, 4} {
		for _, max := range caps {
			for accepted := 0; accepted <= 8; accepted++ {
				for _, status := range statuses {
					for _, end := range ends {
						trip := futureTrip(min, max, accepted)
						trip.Status = status
						trip.EndDate = end

						got := Categorize(trip, today)
						matches := 0
						for _, c := range []Category{CategoryPast, CategoryFull, CategoryViable, CategoryBelowMinimum} {
							if got == c {
								matches++
							}
						}
						assert.Equal(t, 1, matches, "trip min=%d max=%v accepted=%d status=%s", min, max, accepted, status)
					}
				}
			}
		}
	}
}

// Raising the accepted count never moves a trip backwards through
// below_minimum -> viable -> full.
func TestCategorizeMonotonicInAcceptedCount(t *testing.T) {
	rank := map[Category]int{
		CategoryBelowMinimum: 0,
		CategoryViable:       1,
		CategoryFull:         2,
	}

	prev := -1
	for accepted := 0; accepted <= 10; accepted++ {
		got := Categorize(futureTrip(4, intPtr(6), accepted), today)
		r, ok := rank[got]
		assert.True(t, ok, "unexpected PAST for a future trip")
		assert.GreaterOrEqual(t, r, prev, "accepted=%d regressed", accepted)
		prev = r
	}
}

// The scenario from the requests dashboard: a trip fills up, then ends.
func TestCategorizeRoundTrip(t *testing.T) {
	trip := futureTrip(4, intPtr(6), 3)
	assert.Equal(t, CategoryBelowMinimum, Categorize(trip, today))

	trip.AcceptedParticipants = 4
	assert.Equal(t, CategoryViable, Categorize(trip, today))

	trip.AcceptedParticipants = 6
	assert.Equal(t, CategoryFull, Categorize(trip, today))

	trip.EndDate = today.AddDate(0, 0, -1)
	assert.Equal(t, CategoryPast, Categorize(trip, today))
}

func TestIsFullMissingCap(t *testing.T) {
	assert.False(t, IsFull(futureTrip(2, nil, 50)))
	assert.False(t, IsFull(futureTrip(2, intPtr(0), 50)))
}

func TestReachedMinimumMissingBound(t *testing.T) {
	assert.False(t, ReachedMinimum(futureTrip(0, nil, 50)))
}
