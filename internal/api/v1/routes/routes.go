package routes

import (
	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/handlers"
	"audioscribe/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	UploadService        services.UploadService
	TranscriptionService services.TranscriptionService
	ProfileService       services.ProfileService
}

// RegisterRoutes registers all v1 API routes. Everything except the plan
// table requires an authenticated caller.
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer, verifier middleware.TokenVerifier) {
	profileHandler := handlers.NewProfileHandler(container.ProfileService)
	router.GET("/plans", profileHandler.ListPlans)

	authed := router.Group("")
	authed.Use(middleware.RequireAuth(verifier))

	uploadHandler := handlers.NewUploadHandler(container.UploadService)
	upload := authed.Group("/upload")
	{
		upload.POST("", uploadHandler.Upload)
		upload.GET("", uploadHandler.List)
	}

	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	authed.POST("/transcribe", transcriptionHandler.Transcribe)
	authed.GET("/transcriptions/:id", transcriptionHandler.Get)

	authed.GET("/profile", profileHandler.GetProfile)
}
