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
	"github.com/edunir/tripshare/internal/pkg/dberrors"
)

// ParticipationRepository handles database operations for participations
type ParticipationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new pending participation. A partial unique index on
// (trip_id, user_id) over active rows rejects a second live request.
func (r *ParticipationRepository) Create(ctx context.Context, p *models.Participation) (int64, error) {
	query := `
		INSERT INTO participations (trip_id, user_id, status, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.TripID,
		p.UserID,
		p.Status,
		p.Message,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "participations_active_unique") {
			return 0, apperrors.ErrAlreadyRequested
		}
		return 0, fmt.Errorf("error creating participation: %w", err)
	}

	return p.ID, nil
}

// GetByID retrieves a participation by ID
func (r *ParticipationRepository) GetByID(ctx context.Context, id int64) (*models.Participation, error) {
	query := `
		SELECT id, trip_id, user_id, status, message, created_at, updated_at
		FROM participations
		WHERE id = $1
	`

	var p models.Participation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.TripID, &p.UserID, &p.Status, &p.Message, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, fmt.Errorf("error retrieving participation %d: %w", id, err)
	}

	return &p, nil
}

// GetByTripAndUser retrieves every participation a user has for a trip,
// newest first. Terminal rows are included so callers can see history.
func (r *ParticipationRepository) GetByTripAndUser(ctx context.Context, tripID, userID int64) ([]*models.Participation, error) {
	query := `
		SELECT id, trip_id, user_id, status, message, created_at, updated_at
		FROM participations
		WHERE trip_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, tripID, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving participations: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

// GetByTrip retrieves the participations of a trip with their requesters,
// optionally filtered by status.
func (r *ParticipationRepository) GetByTrip(ctx context.Context, tripID int64, status string, page, pageSize int) ([]*models.Participation, int64, error) {
	builder := r.sb.Select(
		"p.id", "p.trip_id", "p.user_id", "p.status", "p.message", "p.created_at", "p.updated_at",
		"u.name", "u.photo_url", "u.average_rating", "u.rating_count",
	).
		Column("COUNT(*) OVER() AS total_count").
		From("participations p").
		Join("users u ON p.user_id = u.id").
		Where(squirrel.Eq{"p.trip_id": tripID}).
		OrderBy("p.created_at ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	if status != "" {
		builder = builder.Where(squirrel.Eq{"p.status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build trip participations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing trip participations: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	var total int64
	for rows.Next() {
		var p models.Participation
		var user models.User
		err := rows.Scan(
			&p.ID, &p.TripID, &p.UserID, &p.Status, &p.Message, &p.CreatedAt, &p.UpdatedAt,
			&user.Name, &user.PhotoURL, &user.AverageRating, &user.RatingCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning participation row: %w", err)
		}
		user.ID = p.UserID
		p.User = &user
		participations = append(participations, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating participation rows: %w", err)
	}

	return participations, total, nil
}

// GetAcceptedByTrip returns the accepted roster of a trip, used for rating
// eligibility checks.
func (r *ParticipationRepository) GetAcceptedByTrip(ctx context.Context, tripID int64) ([]*models.Participation, error) {
	query := `
		SELECT id, trip_id, user_id, status, message, created_at, updated_at
		FROM participations
		WHERE trip_id = $1 AND status = $2
	`

	rows, err := r.db.Query(ctx, query, tripID, models.ParticipationAccepted)
	if err != nil {
		return nil, fmt.Errorf("error retrieving trip roster: %w", err)
	}
	defer rows.Close()

	return collectParticipations(rows)
}

// GetByUser retrieves the participations a user has made, joined with the
// trip and its creator so list views need no second query.
func (r *ParticipationRepository) GetByUser(ctx context.Context, userID int64, status string, page, pageSize int) ([]*models.Participation, int64, error) {
	return r.listWithTrip(ctx, squirrel.Eq{"p.user_id": userID}, status, page, pageSize)
}

// GetForCreator retrieves the participations on trips created by the given
// user, i.e. the requests the creator must decide on.
func (r *ParticipationRepository) GetForCreator(ctx context.Context, creatorID int64, status string, page, pageSize int) ([]*models.Participation, int64, error) {
	return r.listWithTrip(ctx, squirrel.Eq{"t.creator_id": creatorID}, status, page, pageSize)
}

func (r *ParticipationRepository) listWithTrip(ctx context.Context, where squirrel.Eq, status string, page, pageSize int) ([]*models.Participation, int64, error) {
	builder := r.sb.Select(
		"p.id", "p.trip_id", "p.user_id", "p.status", "p.message", "p.created_at", "p.updated_at",
		"u.name", "u.photo_url", "u.average_rating", "u.rating_count",
		"t.creator_id", "t.title", "t.destination", "t.departure", "t.start_date", "t.end_date",
		"t.cost_per_person", "t.min_participants", "t.max_participants", "t.status",
		"t.accepted_participants", "t.created_at", "t.updated_at",
	).
		Column("COUNT(*) OVER() AS total_count").
		From("participations p").
		Join("users u ON p.user_id = u.id").
		Join("trips t ON p.trip_id = t.id").
		Where(where).
		OrderBy("p.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	if status != "" {
		builder = builder.Where(squirrel.Eq{"p.status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build participations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing participations: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	var total int64
	for rows.Next() {
		var p models.Participation
		var user models.User
		var trip models.Trip
		err := rows.Scan(
			&p.ID, &p.TripID, &p.UserID, &p.Status, &p.Message, &p.CreatedAt, &p.UpdatedAt,
			&user.Name, &user.PhotoURL, &user.AverageRating, &user.RatingCount,
			&trip.CreatorID, &trip.Title, &trip.Destination, &trip.Departure, &trip.StartDate,
			&trip.EndDate, &trip.CostPerPerson, &trip.MinParticipants, &trip.MaxParticipants,
			&trip.Status, &trip.AcceptedParticipants, &trip.CreatedAt, &trip.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning participation row: %w", err)
		}
		user.ID = p.UserID
		trip.ID = p.TripID
		p.User = &user
		p.Trip = &trip
		participations = append(participations, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating participation rows: %w", err)
	}

	return participations, total, nil
}

// UpdateStatus moves a participation from one status to another within the
// caller's transaction, together with the trip counter adjustment. The
// previous status is part of the WHERE clause: a concurrent transition on
// the same row loses with zero rows affected instead of being applied a
// second time, and the enclosing transaction rolls the counter back.
func (r *ParticipationRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, from, to models.ParticipationStatus) error {
	sql, args, err := buildStatusTransition(r.sb, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to build participation update: %w", err)
	}

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating participation %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		// The row is gone or another transaction already moved it on.
		return roster.ErrIllegalTransition
	}
	return nil
}

func buildStatusTransition(sb squirrel.StatementBuilderType, id int64, from, to models.ParticipationStatus) (string, []interface{}, error) {
	return sb.Update("participations").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
}

// Delete removes a participation row entirely. Only pending requests may be
// deleted; the service layer enforces that.
func (r *ParticipationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM participations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting participation %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}
	return nil
}

func collectParticipations(rows pgx.Rows) ([]*models.Participation, error) {
	var participations []*models.Participation
	for rows.Next() {
		var p models.Participation
		err := rows.Scan(&p.ID, &p.TripID, &p.UserID, &p.Status, &p.Message, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning participation row: %w", err)
		}
		participations = append(participations, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participation rows: %w", err)
	}
	return participations, nil
}
