package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edunir/tripshare/internal/app/controllers"
	"github.com/edunir/tripshare/internal/app/models/dto"
	"github.com/edunir/tripshare/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	tripController *controllers.TripController,
	participationController *controllers.ParticipationController,
	ratingController *controllers.RatingController,
	surveyController *controllers.SurveyController,
	chatController *controllers.ChatController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Trip browsing (anonymous allowed, viewer context when a token is sent) ---
	tripsPublic := v1.Group("/trips")
	tripsPublic.Use(authMiddleware.OptionalJWTAuth())
	{
		tripsPublic.GET("", tripController.ListTrips)
		tripsPublic.GET("/:id", tripController.GetTrip)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile and per-user listings
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMyProfile)
			users.PUT("/me", userController.UpdateMyProfile)
			users.PUT("/me/password", userController.ChangePassword)
			users.GET("/me/trips", userController.GetMyCreatedTrips)
			users.GET("/me/trips/joined", userController.GetMyJoinedTrips)
			users.GET("/me/requests", userController.GetMyRequests)
			users.GET("/me/trip-requests", userController.GetRequestsForMyTrips)
			users.GET("/:id", userController.GetUser)
			users.GET("/:id/ratings", userController.GetUserRatings)
		}

		// Trip management and per-trip resources
		trips := authenticated.Group("/trips")
		{
			trips.POST("", tripController.CreateTrip)
			trips.PUT("/:id", tripController.UpdateTrip)
			trips.DELETE("/:id", tripController.DeleteTrip)

			trips.POST("/:id/participations", participationController.RequestToJoin)
			trips.GET("/:id/participations", participationController.GetTripParticipations)

			trips.POST("/:id/ratings", ratingController.RateTraveler)
			trips.GET("/:id/ratings", ratingController.GetTripRatingsGiven)

			trips.POST("/:id/surveys", surveyController.CreateSurvey)
			trips.GET("/:id/surveys", surveyController.GetTripSurveys)

			trips.GET("/:id/chat/messages", chatController.GetMessages)
			trips.POST("/:id/chat/messages", chatController.SendMessage)
			trips.GET("/:id/chat/ws", chatController.Connect)
		}

		participations := authenticated.Group("/participations")
		{
			participations.GET("/:id", participationController.GetParticipation)
			participations.PATCH("/:id", participationController.UpdateStatus)
			participations.DELETE("/:id", participationController.CancelRequest)
		}

		surveys := authenticated.Group("/surveys")
		{
			surveys.POST("/:id/vote", surveyController.Vote)
			surveys.POST("/:id/close", surveyController.CloseSurvey)
			surveys.DELETE("/:id", surveyController.DeleteSurvey)
		}

		authenticated.DELETE("/chat/messages/:id", chatController.DeleteMessage)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
