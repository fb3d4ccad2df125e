package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"veritas-ai/cmd/api/clients/contentclient"
	"veritas-ai/cmd/api/handlers"
	"veritas-ai/cmd/api/middleware"
	"veritas-ai/cmd/api/services"
	_ "veritas-ai/docs"
)

// Deps carries the services the route tree is built from.
type Deps struct {
	ContentClient *contentclient.Client
	AuthService   *services.AuthService
	AnalysisSvc   *services.AnalysisService
	CommunitySvc  *services.CommunityService
	Notifier      *services.FeedNotifier
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := deps.ContentClient.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "content_service": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/auth/google/login", handlers.GoogleLoginHandler(deps.AuthService))
		api.GET("/auth/google/callback", handlers.GoogleCallbackHandler(deps.AuthService))

		signedIn := api.Group("", middleware.RequireUser(deps.AuthService))
		{
			signedIn.GET("/users/profile", handlers.GetUserProfileHandler(deps.AuthService))
			signedIn.POST("/analysis/text", handlers.AnalyzeTextHandler(deps.AnalysisSvc))
			signedIn.POST("/analysis/url", handlers.AnalyzeURLHandler(deps.AnalysisSvc))
			signedIn.POST("/analysis/image", handlers.AnalyzeImageHandler(deps.AnalysisSvc))
			signedIn.GET("/history", handlers.GetHistoryHandler(deps.AnalysisSvc))
			signedIn.POST("/community/feed/:id/vote", handlers.VoteHandler(deps.CommunitySvc))
		}

		// Anonymous browser sessions may read the feed; they identify
		// themselves with X-Anonymous-Id. Voting needs a real account.
		api.GET("/community/feed", middleware.OptionalUser(deps.AuthService), handlers.GetCommunityFeedHandler(deps.CommunitySvc))
		api.GET("/community/feed/stream", handlers.FeedStreamHandler(deps.Notifier))
	}

	return r
}
