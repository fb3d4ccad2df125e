package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"veritas-ai/models"
	"veritas-ai/sanitizer"
)

// AnalyzeImage runs a multimodal authenticity analysis over raw image bytes.
// Reverse-image-search findings, when available, are passed to the model as
// additional context.
func (a *Analyzer) AnalyzeImage(ctx context.Context, img []byte, mimeType string, findings *models.VisionFindings) (*models.ImageAnalysisResult, *RequestLog, error) {
	startTime := time.Now()

	parts := []*genai.Part{
		genai.NewPartFromBytes(img, mimeType),
	}
	if findings != nil {
		encoded, err := json.Marshal(findings)
		if err == nil {
			parts = append(parts, genai.NewPartFromText(
				fmt.Sprintf("Reverse image search findings for this image:\n%s", encoded),
			))
		}
	}

	result, err := a.client.Models.GenerateContent(
		ctx,
		a.modelName,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: IMAGE_SYSTEM_INSTRUCTION}}},
		},
	)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := sanitizer.SanitizeImageAnalysis(result.Text())
	if err != nil {
		return nil, nil, err
	}
	return &analysis, a.requestLog(result, startTime), nil
}

// AuditImageRisk runs a second pass over an already-analyzed image looking
// for harm the first pass missed. The audit can only raise the risk score.
func (a *Analyzer) AuditImageRisk(ctx context.Context, img []byte, mimeType string, prior models.ImageAnalysisResult) (*models.ImageAnalysisResult, error) {
	encoded, err := json.Marshal(prior)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(img, mimeType),
		genai.NewPartFromText(fmt.Sprintf("Prior analysis of this image:\n%s", encoded)),
	}

	result, err := a.client.Models.GenerateContent(
		ctx,
		a.modelName,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: IMAGE_AUDIT_SYSTEM_INSTRUCTION}}},
		},
	)
	if err != nil {
		return nil, err
	}

	audit, err := sanitizer.SanitizeImageAnalysis(result.Text())
	if err != nil {
		return nil, err
	}
	merged := sanitizer.ApplyRiskAudit(prior, audit)
	return &merged, nil
}
