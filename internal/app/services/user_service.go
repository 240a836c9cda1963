package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/app/repositories"
	"github.com/edunir/tripshare/internal/pkg/apperrors"
	"github.com/edunir/tripshare/internal/pkg/auth"
	"github.com/edunir/tripshare/internal/pkg/helpers"
)

// UserService defines the interface for user profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	GetUserRatings(ctx context.Context, userID int64, page, pageSize int) (*dto.RatingListResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo   *repositories.UserRepository
	ratingRepo *repositories.RatingRepository
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	ratingRepo *repositories.RatingRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// GetProfile retrieves a user's public profile
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the profile changes and returns the updated profile
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = strings.TrimSpace(req.Phone)
	user.PhotoURL = req.PhotoURL
	user.Bio = req.Bio
	user.Interests = req.Interests

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update profile")
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash new password")
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to update password")
		return err
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

// GetUserRatings lists the ratings a user has received
func (s *userServiceImpl) GetUserRatings(ctx context.Context, userID int64, page, pageSize int) (*dto.RatingListResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ratings, total, err := s.ratingRepo.GetByRatedUser(ctx, userID, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list ratings")
		return nil, err
	}

	resp := &dto.RatingListResponse{
		Ratings:    make([]dto.RatingResponse, 0, len(ratings)),
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}
	for _, rating := range ratings {
		resp.Ratings = append(resp.Ratings, dto.ToRatingResponse(rating))
	}

	return resp, nil
}
