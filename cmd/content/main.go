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

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"veritas-ai/config"
	"veritas-ai/logger"
	"veritas-ai/scraper"
	"veritas-ai/vision"
)

func main() {
	config.InitApp()
	logger.InitFromEnv("LOG_LEVEL")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pageScraper := scraper.NewScraper(config.GetConfig().Scrape)

	// Vision is optional: without credentials the scrape endpoint still
	// works and image requests answer 503.
	visionClient, err := vision.NewClient(ctx)
	if err != nil {
		logger.Log.Warnf("Vision client unavailable: %v", err)
		visionClient = nil
	} else {
		defer visionClient.Close()
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", healthHandler())
	v1 := r.Group("/api/v1")
	{
		v1.POST("/scrape", scrapeHandler(pageScraper))
		v1.POST("/vision/analyze", visionAnalyzeHandler(visionClient))
	}

	// The gateway is the only intended caller, but local frontend dev
	// sometimes hits this service directly.
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id", "X-Span-Id"},
	}).Handler(r)

	srv := &http.Server{Addr: ":8001", Handler: handler}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	logger.Log.Info("Content service listening on :8001")

	<-ctx.Done()
	logger.Log.Info("Shutting down content service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server shutdown failed: %v", err)
		os.Exit(1)
	}
}
