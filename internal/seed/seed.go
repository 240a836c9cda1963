package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/edunir/tripshare/internal/app/models"
	appRepos "github.com/edunir/tripshare/internal/app/repositories"
	"github.com/edunir/tripshare/internal/pkg/auth"
)

const demoEmail = "demo@tripshare.app"

// CreateDefaultData seeds a demo account and an example trip for
// development environments. Errors are collected rather than aborting:
// seeding is a convenience, not a startup requirement.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	tripRepo := appRepos.NewTripRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	exists, err := userRepo.EmailExists(ctx, demoEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if demo user exists")
		return err
	}
	if exists {
		return nil
	}

	lgr.Info().Msg("Creating demo user...")
	hashedPassword, err := auth.HashPassword("Demo1234!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing demo user password")
		return err
	}

	demoUser := &appModels.User{
		Name:     "Demo Traveler",
		Email:    demoEmail,
		Password: hashedPassword,
		Phone:    "+34 600 000 000",
		IsActive: true,
	}
	demoID, err := userRepo.Create(ctx, demoUser)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo user")
		return err
	}

	startDate := time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	cost := 120.0
	maxParticipants := 5
	demoTrip := &appModels.Trip{
		CreatorID:       demoID,
		Title:           "Weekend in the Pyrenees",
		Description:     "Three days of hiking and mountain villages. Shared car from Barcelona.",
		Destination:     "Vall de Boí",
		Departure:       "Barcelona",
		StartDate:       startDate,
		EndDate:         startDate.AddDate(0, 0, 2),
		CostPerPerson:   &cost,
		MinParticipants: 2,
		MaxParticipants: &maxParticipants,
		TransportInfo:   "Shared car, leaving Friday 07:00",
		Status:          appModels.TripStatusOpen,
	}
	if _, err := tripRepo.Create(ctx, demoTrip); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo trip")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}
