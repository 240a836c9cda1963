package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Name          string     `json:"name" db:"name" example:"Laura Martínez"`                                 // Display name
	Email         string     `json:"email" db:"email" example:"laura@example.com"`                            // User's email address
	Password      string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	Phone         string     `json:"phone" db:"phone" example:"+34 600 123 456"`                              // Contact phone (free text)
	PhotoURL      *string    `json:"photoUrl,omitempty" db:"photo_url" example:"https://example.com/p.jpg"`   // Avatar URL (nullable)
	Bio           string     `json:"bio" db:"bio"`                                                            // Short biography
	Interests     string     `json:"interests" db:"interests"`                                                // Free-text interests
	AverageRating float64    `json:"averageRating" db:"average_rating" example:"4.5"`                         // Aggregate rating, server-maintained
	RatingCount   int        `json:"ratingCount" db:"rating_count" example:"12"`                              // Number of ratings received
	IsActive      bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2026-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`                                               // Timestamp when the user was created
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`                                               // Timestamp when the user was last updated
}
