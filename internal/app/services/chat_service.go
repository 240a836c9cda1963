package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/edunir/tripshare/internal/app/models"
	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/repositories"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
	"github.com/edunir/tripshare/internal/pkg/websocket"
)

// ChatService defines the interface for trip chat operations
type ChatService interface {
	SendMessage(ctx context.Context, userID, tripID int64, req *dto.CreateChatMessageRequest) (*dto.ChatMessageResponse, error)
	GetMessages(ctx context.Context, userID, tripID int64, filter *dto.GetChatMessagesRequest) (*dto.ChatMessageListResponse, error)
	DeleteMessage(ctx context.Context, userID, messageID int64) error
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo          *repositories.ChatRepository
	tripRepo          *repositories.TripRepository
	participationRepo *repositories.ParticipationRepository
	wsHub             *websocket.Hub
	logger            zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo *repositories.ChatRepository,
	tripRepo *repositories.TripRepository,
	participationRepo *repositories.ParticipationRepository,
	wsHub *websocket.Hub,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatRepo:          chatRepo,
		tripRepo:          tripRepo,
		participationRepo: participationRepo,
		wsHub:             wsHub,
		logger:            logger,
	}
}

// SendMessage persists a chat message and broadcasts it to the trip room
func (s *chatServiceImpl) SendMessage(ctx context.Context, userID, tripID int64, req *dto.CreateChatMessageRequest) (*dto.ChatMessageResponse, error) {
	member, err := isTripMember(ctx, s.tripRepo, s.participationRepo, userID, tripID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.NewForbiddenError("Only trip members can post in the chat")
	}

	if req.ParentID != nil {
		parent, err := s.chatRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.TripID != tripID {
			return nil, apperrors.NewBadRequestError("parent message belongs to another trip")
		}
	}

	message := &models.ChatMessage{
		TripID:   tripID,
		SenderID: userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}

	if _, err := s.chatRepo.Create(ctx, message); err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to create chat message")
		return nil, err
	}

	// Reload with the sender joined for the response and the broadcast
	stored, err := s.chatRepo.GetByID(ctx, message.ID)
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		eventType := "message"
		if stored.ParentID != nil {
			eventType = "reply"
		}
		event := &websocket.Message{
			Type:      eventType,
			TripID:    tripID,
			SenderID:  userID,
			Content:   stored.Content,
			ParentID:  stored.ParentID,
			ID:        stored.ID,
			Timestamp: time.Now(),
		}
		if stored.Sender != nil {
			event.SenderName = stored.Sender.Name
		}
		s.wsHub.BroadcastToTrip(event)
	}

	resp := dto.ToChatMessageResponse(stored)
	return &resp, nil
}

// GetMessages retrieves a trip's chat, threaded by parent message
func (s *chatServiceImpl) GetMessages(ctx context.Context, userID, tripID int64, filter *dto.GetChatMessagesRequest) (*dto.ChatMessageListResponse, error) {
	member, err := isTripMember(ctx, s.tripRepo, s.participationRepo, userID, tripID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.NewForbiddenError("Only trip members can read the chat")
	}

	messages, err := s.chatRepo.GetByTrip(ctx, tripID, filter.Before, filter.After, filter.Limit)
	if err != nil {
		s.logger.Error().Err(err).Int64("tripID", tripID).Msg("Failed to list chat messages")
		return nil, err
	}

	return &dto.ChatMessageListResponse{Messages: threadMessages(messages)}, nil
}

// DeleteMessage removes a message the caller sent, or any message when the
// caller is the trip creator.
func (s *chatServiceImpl) DeleteMessage(ctx context.Context, userID, messageID int64) error {
	message, err := s.chatRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.SenderID != userID {
		trip, err := s.tripRepo.GetByID(ctx, message.TripID)
		if err != nil {
			return err
		}
		if trip.CreatorID != userID {
			return apperrors.NewForbiddenError("Only the sender or the trip creator can delete a message")
		}
	}

	if err := s.chatRepo.Delete(ctx, messageID); err != nil {
		s.logger.Error().Err(err).Int64("messageID", messageID).Msg("Failed to delete chat message")
		return err
	}

	s.logger.Info().Int64("messageID", messageID).Msg("Chat message deleted")
	return nil
}

// threadMessages arranges a flat, chronologically ordered slice into a
// tree. A reply whose parent fell outside the window is promoted to the
// top level rather than dropped.
func threadMessages(messages []*models.ChatMessage) []dto.ChatMessageResponse {
	byID := make(map[int64]*models.ChatMessage, len(messages))
	for _, m := range messages {
		byID[m.ID] = m
	}

	var roots []*models.ChatMessage
	for _, m := range messages {
		if m.ParentID != nil {
			if parent, ok := byID[*m.ParentID]; ok {
				parent.Replies = append(parent.Replies, m)
				continue
			}
		}
		roots = append(roots, m)
	}

	responses := make([]dto.ChatMessageResponse, 0, len(roots))
	for _, m := range roots {
		responses = append(responses, dto.ToChatMessageResponse(m))
	}
	return responses
}
