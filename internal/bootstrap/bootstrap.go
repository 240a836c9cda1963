package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/edunir/tripshare/internal/app/controllers"
	appMigrations "github.com/edunir/tripshare/internal/app/migrations"
	appModels "github.com/edunir/tripshare/internal/app/models"
	appRepos "github.com/edunir/tripshare/internal/app/repositories"
	appRoutes "github.com/edunir/tripshare/internal/app/routes"
	appServices "github.com/edunir/tripshare/internal/app/services"
	"github.com/edunir/tripshare/internal/config"
	"github.com/edunir/tripshare/internal/db"
	appMiddleware "github.com/edunir/tripshare/internal/middleware"
	pkgAuth "github.com/edunir/tripshare/internal/pkg/auth"
	"github.com/edunir/tripshare/internal/pkg/helpers"
	"github.com/edunir/tripshare/internal/pkg/logger"
	"github.com/edunir/tripshare/internal/pkg/websocket"
	"github.com/edunir/tripshare/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services                *appServices.Services
	AuthController          *appControllers.AuthController
	UserController          *appControllers.UserController
	TripController          *appControllers.TripController
	ParticipationController *appControllers.ParticipationController
	RatingController        *appControllers.RatingController
	SurveyController        *appControllers.SurveyController
	ChatController          *appControllers.ChatController
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Repos                   *appRepos.Repositories
	JWTService              *pkgAuth.JWTService
	Hub                     *websocket.Hub
	Logger                  zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and
// the chat hub.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	deps.Services = appServices.NewServices(deps.Repos, database, deps.JWTService, deps.Hub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	wsHandler := websocket.NewHandler(deps.Hub, tripMembership(deps.Repos), cfg.Server.AllowedOrigins, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, deps.Services.TripService, deps.Services.ParticipationService)
	deps.TripController = appControllers.NewTripController(deps.Services.TripService)
	deps.ParticipationController = appControllers.NewParticipationController(deps.Services.ParticipationService)
	deps.RatingController = appControllers.NewRatingController(deps.Services.RatingService)
	deps.SurveyController = appControllers.NewSurveyController(deps.Services.SurveyService)
	deps.ChatController = appControllers.NewChatController(deps.Services.ChatService, wsHandler)

	return deps, nil
}

// tripMembership authorizes chat room connections: the trip creator and
// accepted participants are members.
func tripMembership(repos *appRepos.Repositories) websocket.MembershipFn {
	return func(ctx context.Context, userID, tripID int64) (bool, error) {
		trip, err := repos.TripRepository.GetByID(ctx, tripID)
		if err != nil {
			return false, err
		}
		if trip.CreatorID == userID {
			return true, nil
		}
		history, err := repos.ParticipationRepository.GetByTripAndUser(ctx, tripID, userID)
		if err != nil {
			return false, err
		}
		for _, p := range history {
			if p.Status == appModels.ParticipationAccepted {
				return true, nil
			}
		}
		return false, nil
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.TripController,
		deps.ParticipationController,
		deps.RatingController,
		deps.SurveyController,
		deps.ChatController,
		deps.AuthMiddleware,
	)

	return router
}
