package main

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"veritas-ai/logger"
	"veritas-ai/scraper"
	"veritas-ai/vision"
)

const maxImageBytes = 8 << 20

type scrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

type visionRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mimeType"`
}

// scrapeHandler extracts readable article text from a page URL.
// Upstream failures keep their status so the gateway can relay them.
func scrapeHandler(s *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req scrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_url"})
			return
		}

		result, err := s.Scrape(c.Request.Context(), req.URL)
		if err != nil {
			var scrapeErr *scraper.ScrapeError
			if errors.As(err, &scrapeErr) {
				c.JSON(scrapeErr.StatusCode, gin.H{"error": scrapeErr.Message})
				return
			}
			logger.Log.Errorf("Scrape failed for %s: %v", req.URL, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "scrape_failed"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// visionAnalyzeHandler runs reverse image search and safe-search checks
// over an uploaded image and returns the reduced findings.
func visionAnalyzeHandler(v *vision.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vision_not_configured"})
			return
		}

		var req visionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_image"})
			return
		}

		img, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil || len(img) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_image_encoding"})
			return
		}
		if len(img) > maxImageBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image_too_large"})
			return
		}

		findings, err := v.Analyze(c.Request.Context(), img)
		if err != nil {
			logger.Log.Errorf("Vision analysis failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "vision_analysis_failed"})
			return
		}
		c.JSON(http.StatusOK, findings)
	}
}

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
