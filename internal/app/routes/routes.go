package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/adisharma/clubhub/internal/app/controllers"
	"github.com/adisharma/clubhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	registrationController *controllers.RegistrationController,
	teamController *controllers.TeamController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/provider", authController.ProviderLogin)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.GET("/raw", profileController.GetRawProfile)
			profile.POST("", profileController.CreateProfile)
			profile.PUT("", profileController.UpdateProfile)
		}

		event := authenticated.Group("/clubs/:clubId/events/:eventId")
		{
			registrations := event.Group("/registrations")
			{
				registrations.POST("", registrationController.Register)
				registrations.POST("/paid", registrationController.RegisterPaid)
				registrations.POST("/team", registrationController.RegisterTeam)
				registrations.GET("", registrationController.List)
				registrations.GET("/mine", registrationController.Mine)
				registrations.GET("/stats", registrationController.Stats)
				registrations.GET("/:registrationId", registrationController.Get)
				registrations.PUT("/:registrationId/status", registrationController.UpdateStatus)
				registrations.PUT("/:registrationId/checkin", registrationController.CheckIn)
				registrations.PUT("/:registrationId/payment", registrationController.UpdatePayment)
				registrations.DELETE("/:registrationId", registrationController.Delete)
			}

			event.POST("/payments", registrationController.StorePayment)
			event.GET("/payments/:paymentId", registrationController.GetPayment)

			teams := event.Group("/teams")
			{
				teams.POST("", teamController.Create)
				teams.POST("/:teamId/join", teamController.Join)
				teams.GET("/search", teamController.Search)
			}
		}
	}
}
