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
	"github.com/edunir/tripshare/internal/pkg/apperrors"
)

// ChatRepository handles database operations for chat messages
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new chat message
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) (int64, error) {
	query := `
		INSERT INTO chat_messages (trip_id, sender_id, content, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.TripID,
		message.SenderID,
		message.Content,
		message.ParentID,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return 0, fmt.Errorf("error creating chat message: %w", err)
	}

	return message.ID, nil
}

// GetByID retrieves a message with its sender
func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*models.ChatMessage, error) {
	query := `
		SELECT m.id, m.trip_id, m.sender_id, m.content, m.parent_id, m.created_at,
		       u.name, u.photo_url, u.average_rating, u.rating_count
		FROM chat_messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.id = $1
	`

	var message models.ChatMessage
	var sender models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&message.ID, &message.TripID, &message.SenderID, &message.Content,
		&message.ParentID, &message.CreatedAt,
		&sender.Name, &sender.PhotoURL, &sender.AverageRating, &sender.RatingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving chat message %d: %w", id, err)
	}

	sender.ID = message.SenderID
	message.Sender = &sender
	return &message, nil
}

// GetByTrip retrieves the messages of a trip chat with their senders.
// Only top-level messages count against the limit; replies of any depth
// ride along and are threaded by the caller via ParentID.
func (r *ChatRepository) GetByTrip(ctx context.Context, tripID int64, before, after *time.Time, limit int) ([]*models.ChatMessage, error) {
	builder := r.sb.Select(
		"m.id", "m.trip_id", "m.sender_id", "m.content", "m.parent_id", "m.created_at",
		"u.name", "u.photo_url", "u.average_rating", "u.rating_count",
	).
		From("chat_messages m").
		Join("users u ON m.sender_id = u.id").
		Where(squirrel.Eq{"m.trip_id": tripID}).
		OrderBy("m.created_at ASC")

	if before != nil {
		builder = builder.Where(squirrel.Lt{"m.created_at": *before})
	}
	if after != nil {
		builder = builder.Where(squirrel.Gt{"m.created_at": *after})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build chat messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing chat messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var message models.ChatMessage
		var sender models.User
		err := rows.Scan(
			&message.ID, &message.TripID, &message.SenderID, &message.Content,
			&message.ParentID, &message.CreatedAt,
			&sender.Name, &sender.PhotoURL, &sender.AverageRating, &sender.RatingCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning chat message row: %w", err)
		}
		sender.ID = message.SenderID
		message.Sender = &sender
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat message rows: %w", err)
	}

	return messages, nil
}

// Delete removes a message. Replies cascade.
func (r *ChatRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM chat_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting chat message %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
