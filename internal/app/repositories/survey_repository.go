package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
)

// SurveyRepository handles database operations for surveys and votes
type SurveyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSurveyRepository creates a new SurveyRepository
func NewSurveyRepository(db *pgxpool.Pool) *SurveyRepository {
	return &SurveyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a survey and its options within the caller's transaction
func (r *SurveyRepository) Create(ctx context.Context, tx pgx.Tx, survey *models.Survey, options []string) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO surveys (trip_id, creator_id, question) VALUES ($1, $2, $3) RETURNING id, created_at`,
		survey.TripID, survey.CreatorID, survey.Question,
	).Scan(&survey.ID, &survey.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating survey: %w", err)
	}

	survey.Options = make([]*models.SurveyOption, 0, len(options))
	for _, text := range options {
		opt := &models.SurveyOption{SurveyID: survey.ID, Text: text}
		err := tx.QueryRow(ctx,
			`INSERT INTO survey_options (survey_id, option_text) VALUES ($1, $2) RETURNING id`,
			survey.ID, text,
		).Scan(&opt.ID)
		if err != nil {
			return fmt.Errorf("error creating survey option: %w", err)
		}
		survey.Options = append(survey.Options, opt)
	}

	return nil
}

// GetByID retrieves a survey with its options and vote tallies
func (r *SurveyRepository) GetByID(ctx context.Context, id int64) (*models.Survey, error) {
	var survey models.Survey
	err := r.db.QueryRow(ctx,
		`SELECT id, trip_id, creator_id, question, is_closed, created_at FROM surveys WHERE id = $1`,
		id,
	).Scan(&survey.ID, &survey.TripID, &survey.CreatorID, &survey.Question, &survey.IsClosed, &survey.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("error retrieving survey %d: %w", id, err)
	}

	options, err := r.getOptions(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	survey.Options = options[id]

	return &survey, nil
}

// GetByTrip retrieves all surveys of a trip with options and tallies,
// newest first.
func (r *SurveyRepository) GetByTrip(ctx context.Context, tripID int64) ([]*models.Survey, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, trip_id, creator_id, question, is_closed, created_at
		 FROM surveys WHERE trip_id = $1 ORDER BY created_at DESC`,
		tripID)
	if err != nil {
		return nil, fmt.Errorf("error listing surveys: %w", err)
	}
	defer rows.Close()

	var surveys []*models.Survey
	var ids []int64
	for rows.Next() {
		var s models.Survey
		err := rows.Scan(&s.ID, &s.TripID, &s.CreatorID, &s.Question, &s.IsClosed, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning survey row: %w", err)
		}
		surveys = append(surveys, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating survey rows: %w", err)
	}

	if len(ids) == 0 {
		return surveys, nil
	}

	options, err := r.getOptions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range surveys {
		s.Options = options[s.ID]
	}

	return surveys, nil
}

// getOptions loads the options of the given surveys with vote counts
func (r *SurveyRepository) getOptions(ctx context.Context, surveyIDs []int64) (map[int64][]*models.SurveyOption, error) {
	sql, args, err := r.sb.Select(
		"o.id", "o.survey_id", "o.option_text",
	).
		Column("COUNT(v.id) AS vote_count").
		From("survey_options o").
		LeftJoin("survey_votes v ON v.option_id = o.id").
		Where(squirrel.Eq{"o.survey_id": surveyIDs}).
		GroupBy("o.id", "o.survey_id", "o.option_text").
		OrderBy("o.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build survey options query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving survey options: %w", err)
	}
	defer rows.Close()

	options := make(map[int64][]*models.SurveyOption)
	for rows.Next() {
		var opt models.SurveyOption
		err := rows.Scan(&opt.ID, &opt.SurveyID, &opt.Text, &opt.VoteCount)
		if err != nil {
			return nil, fmt.Errorf("error scanning survey option row: %w", err)
		}
		options[opt.SurveyID] = append(options[opt.SurveyID], &opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating survey option rows: %w", err)
	}

	return options, nil
}

// OptionBelongsToSurvey verifies the option is one of the survey's choices
func (r *SurveyRepository) OptionBelongsToSurvey(ctx context.Context, surveyID, optionID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM survey_options WHERE id = $1 AND survey_id = $2)`,
		optionID, surveyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking survey option: %w", err)
	}
	return exists, nil
}

// Vote records or moves a user's vote. The unique constraint on
// (survey_id, user_id) makes re-voting an update, not a second vote.
func (r *SurveyRepository) Vote(ctx context.Context, surveyID, userID, optionID int64) error {
	query := `
		INSERT INTO survey_votes (survey_id, user_id, option_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (survey_id, user_id)
		DO UPDATE SET option_id = EXCLUDED.option_id, created_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, surveyID, userID, optionID); err != nil {
		return fmt.Errorf("error recording vote: %w", err)
	}

	return nil
}

// GetUserVote returns the option the user voted for, or nil
func (r *SurveyRepository) GetUserVote(ctx context.Context, surveyID, userID int64) (*int64, error) {
	var optionID int64
	err := r.db.QueryRow(ctx,
		`SELECT option_id FROM survey_votes WHERE survey_id = $1 AND user_id = $2`,
		surveyID, userID,
	).Scan(&optionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving vote: %w", err)
	}
	return &optionID, nil
}

// Close marks a survey closed so it no longer accepts votes
func (r *SurveyRepository) Close(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE surveys SET is_closed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error closing survey %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSurveyNotFound
	}
	return nil
}

// Delete removes a survey; options and votes cascade
func (r *SurveyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting survey %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSurveyNotFound
	}
	return nil
}
