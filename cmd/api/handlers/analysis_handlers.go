package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"veritas-ai/cmd/api/clients/contentclient"
	"veritas-ai/cmd/api/dto"
	"veritas-ai/cmd/api/middleware"
	"veritas-ai/cmd/api/services"
	"veritas-ai/sanitizer"
)

// 8 MB of raw image data before base64 encoding.
const maxImageBytes = 8 << 20

// AnalyzeTextHandler godoc
// @Summary      Analyze raw text
// @Description  Runs a grounded credibility analysis over submitted text and stores it in the caller's history.
// @Tags         analysis
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.AnalyzeTextRequest  true  "Text to analyze"
// @Produce      json
// @Success      200  {object}  dto.AnalysisResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      429  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /analysis/text [post]
func AnalyzeTextHandler(analysisSvc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AnalyzeTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_text"})
			return
		}

		record, err := analysisSvc.AnalyzeText(c.Request.Context(), middleware.UserID(c), req.Text)
		if err != nil {
			respondAnalysisError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.AnalysisResponseDTO{
			ID:        record.ID,
			Kind:      record.Kind,
			Query:     record.Query,
			Language:  record.Language,
			Timestamp: record.CreatedAt,
			Result:    *record.Result,
		})
	}
}

// AnalyzeURLHandler godoc
// @Summary      Analyze a web page
// @Description  Scrapes the page through the content service and analyzes the extracted article text.
// @Tags         analysis
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.AnalyzeURLRequest  true  "Page URL"
// @Produce      json
// @Success      200  {object}  dto.AnalysisResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      408  {object}  dto.ErrorResponseDTO
// @Failure      429  {object}  dto.ErrorResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /analysis/url [post]
func AnalyzeURLHandler(analysisSvc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AnalyzeURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_url"})
			return
		}

		record, err := analysisSvc.AnalyzeURL(c.Request.Context(), middleware.UserID(c), req.URL)
		if err != nil {
			respondAnalysisError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.AnalysisResponseDTO{
			ID:        record.ID,
			Kind:      record.Kind,
			Query:     record.Query,
			Language:  record.Language,
			Timestamp: record.CreatedAt,
			Result:    *record.Result,
		})
	}
}

// AnalyzeImageHandler godoc
// @Summary      Analyze an uploaded image
// @Description  Runs reverse image search and a multimodal authenticity analysis over an uploaded image.
// @Tags         analysis
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.AnalyzeImageRequest  true  "Base64-encoded image"
// @Produce      json
// @Success      200  {object}  dto.ImageAnalysisResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      413  {object}  dto.ErrorResponseDTO
// @Failure      429  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /analysis/image [post]
func AnalyzeImageHandler(analysisSvc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.AnalyzeImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "missing_image"})
			return
		}

		img, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil || len(img) == 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_image_encoding"})
			return
		}
		if len(img) > maxImageBytes {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponseDTO{Error: "image_too_large"})
			return
		}

		mimeType := req.MimeType
		if mimeType == "" {
			mimeType = http.DetectContentType(img)
		}

		record, findings, err := analysisSvc.AnalyzeImage(c.Request.Context(), middleware.UserID(c), img, mimeType)
		if err != nil {
			respondAnalysisError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.ImageAnalysisResponseDTO{
			ID:        record.ID,
			Kind:      record.Kind,
			Timestamp: record.CreatedAt,
			Result:    *record.ImageResult,
			Findings:  findings,
		})
	}
}

// GetHistoryHandler godoc
// @Summary      List the caller's analysis history
// @Tags         analysis
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.HistoryResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /history [get]
func GetHistoryHandler(analysisSvc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := analysisSvc.History(c.Request.Context(), middleware.UserID(c), 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_load_history"})
			return
		}
		c.JSON(http.StatusOK, dto.HistoryResponseDTO{Items: records})
	}
}

// respondAnalysisError maps service failures to the HTTP responses users
// see. Content-service failures pass their status through.
func respondAnalysisError(c *gin.Context, err error) {
	var statusErr *contentclient.StatusError
	switch {
	case errors.Is(err, services.ErrQuotaExhausted):
		c.JSON(http.StatusTooManyRequests, dto.ErrorResponseDTO{Error: "analysis_quota_exhausted"})
	case errors.Is(err, sanitizer.ErrNoStructuredResponse):
		c.JSON(http.StatusBadGateway, dto.ErrorResponseDTO{Error: "model_returned_no_analysis"})
	case errors.As(err, &statusErr):
		c.JSON(statusErr.StatusCode, dto.ErrorResponseDTO{Error: statusErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "analysis_failed"})
	}
}
