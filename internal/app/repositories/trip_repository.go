package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/domain/roster"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
)

// TripFilter carries the optional filters of the trip listing. Category is
// the derived capacity category evaluated as of Today.
type TripFilter struct {
	Status        string
	Category      string
	Today         time.Time
	Destination   string
	Departure     string
	CreatorID     *int64
	CreatorName   string
	MaxCost       *float64
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	Page          int
	PageSize      int
}

// TripRepository handles database operations for trips
type TripRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var tripSelectColumns = []string{
	"t.id", "t.creator_id", "t.title", "t.description", "t.destination", "t.departure",
	"t.start_date", "t.end_date", "t.cost_per_person", "t.min_participants", "t.max_participants",
	"t.transport_info", "t.accommodation_info", "t.itinerary", "t.status",
	"t.accepted_participants", "t.created_at", "t.updated_at",
	"u.name", "u.photo_url", "u.average_rating", "u.rating_count",
}

func scanTripWithCreator(row pgx.Row, extraDest ...interface{}) (*models.Trip, error) {
	var trip models.Trip
	var creator models.User

	dest := []interface{}{
		&trip.ID,
		&trip.CreatorID,
		&trip.Title,
		&trip.Description,
		&trip.Destination,
		&trip.Departure,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CostPerPerson,
		&trip.MinParticipants,
		&trip.MaxParticipants,
		&trip.TransportInfo,
		&trip.AccommodationInfo,
		&trip.Itinerary,
		&trip.Status,
		&trip.AcceptedParticipants,
		&trip.CreatedAt,
		&trip.UpdatedAt,
		&creator.Name,
		&creator.PhotoURL,
		&creator.AverageRating,
		&creator.RatingCount,
	}
	dest = append(dest, extraDest...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	creator.ID = trip.CreatorID
	trip.Creator = &creator
	return &trip, nil
}

// Create inserts a new trip and returns its ID
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) (int64, error) {
	query := `
		INSERT INTO trips (
			creator_id, title, description, destination, departure,
			start_date, end_date, cost_per_person, min_participants, max_participants,
			transport_info, accommodation_info, itinerary, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		trip.CreatorID,
		trip.Title,
		trip.Description,
		trip.Destination,
		trip.Departure,
		trip.StartDate,
		trip.EndDate,
		trip.CostPerPerson,
		trip.MinParticipants,
		trip.MaxParticipants,
		trip.TransportInfo,
		trip.AccommodationInfo,
		trip.Itinerary,
		trip.Status,
	).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating trip: %w", err)
	}

	return trip.ID, nil
}

// GetByID retrieves a trip with its creator
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	sql, args, err := r.sb.Select(tripSelectColumns...).
		From("trips t").
		Join("users u ON t.creator_id = u.id").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get trip query: %w", err)
	}

	trip, err := scanTripWithCreator(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("error retrieving trip %d: %w", id, err)
	}

	return trip, nil
}

// GetAll retrieves trips matching the filter, newest start date first
func (r *TripRepository) GetAll(ctx context.Context, filter TripFilter) ([]*models.Trip, int64, error) {
	builder := r.sb.Select(tripSelectColumns...).
		Column("COUNT(*) OVER() AS total_count").
		From("trips t").
		Join("users u ON t.creator_id = u.id")

	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"t.status": filter.Status})
	}
	if filter.Destination != "" {
		builder = builder.Where(squirrel.ILike{"t.destination": "%" + filter.Destination + "%"})
	}
	if filter.Departure != "" {
		builder = builder.Where(squirrel.ILike{"t.departure": "%" + filter.Departure + "%"})
	}
	if filter.CreatorID != nil {
		builder = builder.Where(squirrel.Eq{"t.creator_id": *filter.CreatorID})
	}
	if filter.CreatorName != "" {
		builder = builder.Where(squirrel.ILike{"u.name": "%" + filter.CreatorName + "%"})
	}
	if filter.MaxCost != nil {
		builder = builder.Where(squirrel.LtOrEq{"t.cost_per_person": *filter.MaxCost})
	}
	if filter.StartDateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"t.start_date": *filter.StartDateFrom})
	}
	if filter.StartDateTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"t.start_date": *filter.StartDateTo})
	}
	if pred := categoryPredicate(filter.Category, filter.Today); pred != nil {
		builder = builder.Where(pred)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	builder = builder.OrderBy("t.start_date DESC", "t.id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list trips query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	var total int64
	for rows.Next() {
		trip, err := scanTripWithCreator(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning trip row: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trip rows: %w", err)
	}

	return trips, total, nil
}

// categoryPredicate translates a derived capacity category into its SQL
// condition so filtered listings paginate over the matching rows, not over
// a page filtered after the fact. It mirrors the roster classification:
// PAST wins over the count-driven categories, a missing or non-positive cap
// never counts as full, and a non-positive minimum is never met.
func categoryPredicate(category string, today time.Time) squirrel.Sqlizer {
	notPast := squirrel.And{
		squirrel.NotEq{"t.status": models.TripStatusCompleted},
		squirrel.GtOrEq{"t.end_date": today},
	}
	full := squirrel.Expr("(t.max_participants IS NOT NULL AND t.max_participants > 0 AND t.accepted_participants >= t.max_participants)")
	notFull := squirrel.Expr("(t.max_participants IS NULL OR t.max_participants <= 0 OR t.accepted_participants < t.max_participants)")
	minimumMet := squirrel.Expr("(t.min_participants > 0 AND t.accepted_participants >= t.min_participants)")
	minimumNotMet := squirrel.Expr("(t.min_participants <= 0 OR t.accepted_participants < t.min_participants)")

	switch roster.Category(category) {
	case roster.CategoryPast:
		return squirrel.Or{
			squirrel.Eq{"t.status": models.TripStatusCompleted},
			squirrel.Lt{"t.end_date": today},
		}
	case roster.CategoryFull:
		return squirrel.And{notPast, full}
	case roster.CategoryViable:
		return squirrel.And{notPast, notFull, minimumMet}
	case roster.CategoryBelowMinimum:
		return squirrel.And{notPast, notFull, minimumNotMet}
	default:
		return nil
	}
}

// GetByParticipant retrieves trips where the user has an accepted participation
func (r *TripRepository) GetByParticipant(ctx context.Context, userID int64, page, pageSize int) ([]*models.Trip, int64, error) {
	builder := r.sb.Select(tripSelectColumns...).
		Column("COUNT(*) OVER() AS total_count").
		From("trips t").
		Join("users u ON t.creator_id = u.id").
		Join("participations p ON p.trip_id = t.id").
		Where(squirrel.Eq{"p.user_id": userID, "p.status": models.ParticipationAccepted}).
		OrderBy("t.start_date DESC", "t.id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build participant trips query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing participant trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	var total int64
	for rows.Next() {
		trip, err := scanTripWithCreator(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning trip row: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trip rows: %w", err)
	}

	return trips, total, nil
}

// Update replaces the mutable fields of a trip
func (r *TripRepository) Update(ctx context.Context, trip *models.Trip) error {
	sql, args, err := r.sb.Update("trips").
		Set("title", trip.Title).
		Set("description", trip.Description).
		Set("destination", trip.Destination).
		Set("departure", trip.Departure).
		Set("start_date", trip.StartDate).
		Set("end_date", trip.EndDate).
		Set("cost_per_person", trip.CostPerPerson).
		Set("min_participants", trip.MinParticipants).
		Set("max_participants", trip.MaxParticipants).
		Set("transport_info", trip.TransportInfo).
		Set("accommodation_info", trip.AccommodationInfo).
		Set("itinerary", trip.Itinerary).
		Set("status", trip.Status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": trip.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update trip query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating trip %d: %w", trip.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTripNotFound
	}

	return nil
}

// Delete removes a trip. Participations, surveys and chat messages cascade.
func (r *TripRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting trip %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTripNotFound
	}
	return nil
}

// HasActiveParticipations reports whether any pending or accepted
// participation still references the trip.
func (r *TripRepository) HasActiveParticipations(ctx context.Context, tripID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM participations WHERE trip_id = $1 AND status IN ($2, $3))`,
		tripID, models.ParticipationPending, models.ParticipationAccepted,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking trip participations: %w", err)
	}
	return exists, nil
}

// GetByIDForUpdate locks the trip row for the duration of the caller's
// transaction, serializing capacity decisions.
func (r *TripRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.Trip, error) {
	query := `
		SELECT id, creator_id, title, description, destination, departure,
		       start_date, end_date, cost_per_person, min_participants, max_participants,
		       transport_info, accommodation_info, itinerary, status,
		       accepted_participants, created_at, updated_at
		FROM trips
		WHERE id = $1
		FOR UPDATE
	`

	var trip models.Trip
	err := tx.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.CreatorID,
		&trip.Title,
		&trip.Description,
		&trip.Destination,
		&trip.Departure,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CostPerPerson,
		&trip.MinParticipants,
		&trip.MaxParticipants,
		&trip.TransportInfo,
		&trip.AccommodationInfo,
		&trip.Itinerary,
		&trip.Status,
		&trip.AcceptedParticipants,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTripNotFound
		}
		return nil, fmt.Errorf("error locking trip %d: %w", id, err)
	}

	return &trip, nil
}

// AdjustAcceptedCount moves the accepted participant counter by delta within
// the caller's transaction. The counter never goes below zero.
func (r *TripRepository) AdjustAcceptedCount(ctx context.Context, tx pgx.Tx, tripID int64, delta int) error {
	query := `
		UPDATE trips
		SET accepted_participants = GREATEST(accepted_participants + $1, 0),
		    updated_at = NOW()
		WHERE id = $2
	`

	tag, err := tx.Exec(ctx, query, delta, tripID)
	if err != nil {
		return fmt.Errorf("error adjusting accepted count for trip %d: %w", tripID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTripNotFound
	}

	return nil
}
