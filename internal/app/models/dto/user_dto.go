package dto

import (
	"time"

	"github.com/edunir/tripshare/internal/app/models"
)

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	Phone     string  `json:"phone"`
	PhotoURL  *string `json:"photoUrl"`
	Bio       string  `json:"bio" binding:"max=2000"`
	Interests string  `json:"interests" binding:"max=2000"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	PhotoURL      *string   `json:"photoUrl,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Interests     string    `json:"interests,omitempty"`
	AverageRating float64   `json:"averageRating"`
	RatingCount   int       `json:"ratingCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserBasicResponse represents the minimal user information embedded in
// other resources (trips, participations, chat messages).
type UserBasicResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	PhotoURL      *string `json:"photoUrl,omitempty"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// ToUserResponse converts a models.User to a UserResponse
func ToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		PhotoURL:      user.PhotoURL,
		Bio:           user.Bio,
		Interests:     user.Interests,
		AverageRating: user.AverageRating,
		RatingCount:   user.RatingCount,
		CreatedAt:     user.CreatedAt,
	}
}

// ToUserBasicResponse converts a models.User to a UserBasicResponse
func ToUserBasicResponse(user *models.User) *UserBasicResponse {
	if user == nil {
		return nil
	}
	return &UserBasicResponse{
		ID:            user.ID,
		Name:          user.Name,
		PhotoURL:      user.PhotoURL,
		AverageRating: user.AverageRating,
		RatingCount:   user.RatingCount,
	}
}
