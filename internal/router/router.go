// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inccombinator/platform-backend/internal/config"
	"github.com/inccombinator/platform-backend/internal/handlers"
	"github.com/inccombinator/platform-backend/internal/middleware"
	"github.com/inccombinator/platform-backend/internal/services"
	"github.com/inccombinator/platform-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		// Uploads fall back to local disk when the S3 session cannot be built.
		logrus.WithError(err).Warn("S3 unavailable, using local storage")
		storageService = services.NewLocalStorageService(cfg)
	}

	authService := services.NewAuthService(db, cfg)
	applicationService := services.NewApplicationService(db)
	reviewService := services.NewReviewService(db)
	adminService := services.NewAdminService(db)
	paymentService := services.NewPaymentService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, authService, storageService)
	adminHandler := handlers.NewAdminHandler(reviewService, applicationService, notificationService, adminService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public application submission routes
		applications := v1.Group("/applications")
		{
			applications.POST("/pitch-deck", middleware.UploadRateLimit(), applicationHandler.UploadPitchDeck)
			applications.GET("/mine", middleware.AuthRequired(), applicationHandler.ListMine)
			applications.POST("/:type", middleware.SubmissionRateLimit(), applicationHandler.Submit)
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", paymentHandler.CreatePaymentIntent)
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
			payments.GET("/history", paymentHandler.GetPaymentHistory)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboardStats)
			admin.GET("/activity", adminHandler.GetActivityLog)
			admin.GET("/emails", adminHandler.GetEmailLog)

			admin.POST("/applications/status", adminHandler.UpdateStatusByID)
			admin.GET("/applications/:type", adminHandler.ListApplications)
			admin.GET("/applications/:type/:id", adminHandler.GetApplication)
			admin.PUT("/applications/:type/:id/status", adminHandler.UpdateStatus)
		}
	}

	return r
}
