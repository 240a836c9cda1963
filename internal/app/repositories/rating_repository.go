package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
	"github.com/edunir/tripshare/internal/pkg/dberrors"
)

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a rating within the caller's transaction. The unique
// constraint on (trip_id, rater_id, rated_id) is the single source of truth
// for "already rated".
func (r *RatingRepository) Create(ctx context.Context, tx pgx.Tx, rating *models.Rating) (int64, error) {
	query := `
		INSERT INTO ratings (trip_id, rater_id, rated_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		rating.TripID,
		rating.RaterID,
		rating.RatedID,
		rating.Score,
		rating.Comment,
	).Scan(&rating.ID, &rating.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "ratings_trip_rater_rated_key") {
			return 0, apperrors.ErrAlreadyRated
		}
		return 0, fmt.Errorf("error creating rating: %w", err)
	}

	return rating.ID, nil
}

// Exists reports whether the rater already rated this user for this trip
func (r *RatingRepository) Exists(ctx context.Context, tripID, raterID, ratedID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ratings WHERE trip_id = $1 AND rater_id = $2 AND rated_id = $3)`,
		tripID, raterID, ratedID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking rating existence: %w", err)
	}
	return exists, nil
}

// GetByRatedUser retrieves the ratings a user has received, newest first
func (r *RatingRepository) GetByRatedUser(ctx context.Context, ratedID int64, page, pageSize int) ([]*models.Rating, int64, error) {
	builder := r.sb.Select(
		"r.id", "r.trip_id", "r.rater_id", "r.rated_id", "r.score", "r.comment", "r.created_at",
		"u.name", "u.photo_url", "u.average_rating", "u.rating_count",
	).
		Column("COUNT(*) OVER() AS total_count").
		From("ratings r").
		Join("users u ON r.rater_id = u.id").
		Where(squirrel.Eq{"r.rated_id": ratedID}).
		OrderBy("r.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build ratings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.Rating
	var total int64
	for rows.Next() {
		var rating models.Rating
		var rater models.User
		err := rows.Scan(
			&rating.ID, &rating.TripID, &rating.RaterID, &rating.RatedID,
			&rating.Score, &rating.Comment, &rating.CreatedAt,
			&rater.Name, &rater.PhotoURL, &rater.AverageRating, &rater.RatingCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning rating row: %w", err)
		}
		rater.ID = rating.RaterID
		rating.Rater = &rater
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rating rows: %w", err)
	}

	return ratings, total, nil
}

// GetByTripAndRater retrieves the ratings a user has given for one trip,
// used to show which co-travelers remain unrated.
func (r *RatingRepository) GetByTripAndRater(ctx context.Context, tripID, raterID int64) ([]*models.Rating, error) {
	query := `
		SELECT id, trip_id, rater_id, rated_id, score, comment, created_at
		FROM ratings
		WHERE trip_id = $1 AND rater_id = $2
	`

	rows, err := r.db.Query(ctx, query, tripID, raterID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving trip ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*models.Rating
	for rows.Next() {
		var rating models.Rating
		err := rows.Scan(&rating.ID, &rating.TripID, &rating.RaterID, &rating.RatedID,
			&rating.Score, &rating.Comment, &rating.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating rows: %w", err)
	}

	return ratings, nil
}
