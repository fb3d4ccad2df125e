package dto

import (
	"time"

	"veritas-ai/models"
)

// AnalyzeTextRequest is the body of POST /api/v1/analysis/text.
type AnalyzeTextRequest struct {
	Text string `json:"text" binding:"required" example:"Scientists announced today that..."`
}

// AnalyzeURLRequest is the body of POST /api/v1/analysis/url.
type AnalyzeURLRequest struct {
	URL string `json:"url" binding:"required" example:"https://news.example/story"`
}

// AnalyzeImageRequest is the body of POST /api/v1/analysis/image.
// Image carries the raw bytes base64-encoded.
type AnalyzeImageRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mimeType" example:"image/jpeg"`
}

// AnalysisResponseDTO wraps a finished text or URL analysis.
type AnalysisResponseDTO struct {
	ID        string                `json:"id"`
	Kind      string                `json:"kind" example:"url"`
	Query     string                `json:"query"`
	Language  string                `json:"language,omitempty" example:"English"`
	Timestamp time.Time             `json:"timestamp"`
	Result    models.AnalysisResult `json:"result"`
}

// ImageAnalysisResponseDTO wraps a finished image analysis.
type ImageAnalysisResponseDTO struct {
	ID        string                     `json:"id"`
	Kind      string                     `json:"kind" example:"image"`
	Timestamp time.Time                  `json:"timestamp"`
	Result    models.ImageAnalysisResult `json:"result"`
	Findings  *models.VisionFindings     `json:"findings,omitempty"`
}

// HistoryResponseDTO lists a user's past analyses, newest first.
type HistoryResponseDTO struct {
	Items []models.AnalysisRecord `json:"items"`
}
