package dto

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// --- Request DTOs ---

// CreateChatMessageRequest represents data for posting a chat message.
// ParentID, when set, makes the message a reply in a thread.
type CreateChatMessageRequest struct {
	Content  string `json:"content" binding:"required,max=4000"`
	ParentID *int64 `json:"parentId" binding:"omitempty,min=1"`
}

// GetChatMessagesRequest represents filter parameters for retrieving chat messages
type GetChatMessagesRequest struct {
	Before *time.Time `form:"before,omitempty"`
	After  *time.Time `form:"after,omitempty"`
	Limit  int        `form:"limit,default=50" binding:"min=1,max=100"`
}

// --- Response DTOs ---

// ChatMessageResponse represents a chat message with its replies
type ChatMessageResponse struct {
	ID        int64                 `json:"id"`
	TripID    int64                 `json:"tripId"`
	SenderID  int64                 `json:"senderId"`
	Content   string                `json:"content"`
	ParentID  *int64                `json:"parentId,omitempty"`
	Sender    *UserBasicResponse    `json:"sender,omitempty"`
	Replies   []ChatMessageResponse `json:"replies,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

// ChatMessageListResponse represents the threaded messages of a trip chat
type ChatMessageListResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// ToChatMessageResponse converts a models.ChatMessage, recursively
// including its replies.
func ToChatMessageResponse(message *models.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:        message.ID,
		TripID:    message.TripID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		ParentID:  message.ParentID,
		Sender:    ToUserBasicResponse(message.Sender),
		CreatedAt: message.CreatedAt,
	}
	for _, reply := range message.Replies {
		resp.Replies = append(resp.Replies, ToChatMessageResponse(reply))
	}
	return resp
}
