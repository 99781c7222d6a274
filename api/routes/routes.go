package routes

import (
	"github.com/camp-aid/campaid-backend/internal/config"
	"github.com/camp-aid/campaid-backend/internal/handlers"
	"github.com/camp-aid/campaid-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies carries the constructed handlers into the router
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	CampHandler         *handlers.CampHandler
	RegistrationHandler *handlers.RegistrationHandler
	PaymentHandler      *handlers.PaymentHandler
	FeedbackHandler     *handlers.FeedbackHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/admin/login", deps.AuthHandler.AdminLogin)
		}

		public.GET("/camps", deps.CampHandler.GetAllCamps)
		public.GET("/camps/:id", deps.CampHandler.GetCampByID)

		public.GET("/feedback", deps.FeedbackHandler.GetAll)
		public.GET("/feedback/top", deps.FeedbackHandler.TopCamps)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/auth/check/:email", deps.AuthHandler.CheckAdmin)

		users := protected.Group("/users")
		{
			users.GET("", deps.AuthHandler.GetAllUsers)
			users.DELETE("/:id", deps.AuthHandler.DeleteUser)
		}

		camps := protected.Group("/camps")
		{
			camps.POST("", deps.CampHandler.CreateCamp)
			camps.PATCH("/:id", deps.CampHandler.UpdateCamp)
			camps.DELETE("/:id", deps.CampHandler.DeleteCamp)
		}

		registrations := protected.Group("/registrations")
		{
			registrations.POST("", deps.RegistrationHandler.Register)
			registrations.GET("", deps.RegistrationHandler.AdminRoll)
			registrations.GET("/me", deps.RegistrationHandler.MyRegistrations)
			registrations.DELETE("/:id", deps.RegistrationHandler.Cancel)
			registrations.PATCH("/:id/confirm", deps.RegistrationHandler.Confirm)
			registrations.POST("/:id/payment", deps.PaymentHandler.RecordPayment)
		}

		payments := protected.Group("/payments")
		{
			payments.POST("/intent", deps.PaymentHandler.CreateIntent)
			payments.GET("/history/:email", deps.PaymentHandler.History)
		}

		protected.POST("/feedback", deps.FeedbackHandler.Submit)

		protected.POST("/admin/reconcile", deps.RegistrationHandler.Reconcile)
	}

	return router
}
