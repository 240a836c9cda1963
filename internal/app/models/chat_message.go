package models

import "time"

// ChatMessage is one message in a trip's chat. ParentID links replies to
// the message they answer; threads can nest to any depth.
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	TripID    int64     `json:"tripId" db:"trip_id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Sender  *User          `json:"sender,omitempty"`
	Replies []*ChatMessage `json:"replies,omitempty"`
}
