package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"veritas-ai/analyzer"
	"veritas-ai/cmd/api/clients/contentclient"
	"veritas-ai/cmd/api/quota"
	"veritas-ai/cmd/api/router"
	"veritas-ai/cmd/api/services"
	"veritas-ai/config"
	"veritas-ai/db"
	_ "veritas-ai/docs" // swag will generate this package
	"veritas-ai/eventbus"
	"veritas-ai/logger"
	"veritas-ai/repositories"
)

// @title           Veritas AI API
// @version         1.0
// @description     Content credibility analysis and community fact-checking API
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx); err != nil {
		log.Fatal("failed to initialize MongoDB:", err)
	}

	geminiAnalyzer, err := analyzer.NewAnalyzer(ctx)
	if err != nil {
		log.Fatal("failed to initialize analyzer:", err)
	}

	bus, err := eventbus.NewFromEnv()
	if err != nil {
		log.Fatal("failed to initialize event bus:", err)
	}
	defer bus.Close()

	userRepo := repositories.NewUserRepository(db.Database())
	analysisRepo := repositories.NewAnalysisRepository(db.Database())
	communityRepo := repositories.NewCommunityRepository(db.Client(), db.Database())

	authSvc, err := services.NewAuthServiceFromEnv(userRepo)
	if err != nil {
		log.Fatal("failed to initialize auth service:", err)
	}

	notifier := services.NewFeedNotifier()
	communitySvc := services.NewCommunityService(communityRepo, bus, notifier, config.GetConfig().Community.FeedLimit)
	go communitySvc.WatchFeed(ctx)

	contentClient := contentclient.New()
	limiter := quota.NewAnalysisQuotaLimiterFromConfig(config.GetConfig())
	analysisSvc := services.NewAnalysisService(geminiAnalyzer, contentClient, analysisRepo, limiter, bus, communitySvc)

	r := router.New(router.Deps{
		ContentClient: contentClient,
		AuthService:   authSvc,
		AnalysisSvc:   analysisSvc,
		CommunitySvc:  communitySvc,
		Notifier:      notifier,
	})

	srv := &http.Server{Addr: ":8080", Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	logger.Log.Info("API server listening on :8080")

	<-ctx.Done()
	logger.Log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server shutdown failed: %v", err)
		os.Exit(1)
	}
}
