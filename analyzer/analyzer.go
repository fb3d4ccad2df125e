// Package analyzer calls Gemini to assess content credibility. Raw model
// output always passes through the sanitizer before anything downstream
// sees it.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"veritas-ai/config"
	"veritas-ai/logger"
	"veritas-ai/models"
	"veritas-ai/sanitizer"
)

// RequestLog captures one model round trip for observability.
type RequestLog struct {
	Response     string     `json:"response"`
	LatencyMs    int64      `json:"latency_ms"`
	TokenUsage   TokenUsage `json:"token_usage"`
	ModelName    string     `json:"model_name"`
	ModelVersion string     `json:"model_version"`
	GeneratedAt  time.Time  `json:"generated_at"`
}

type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

type Analyzer struct {
	client    *genai.Client
	modelName string
}

func NewAnalyzer(ctx context.Context) (*Analyzer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	modelName := config.GetConfig().GeminiModel
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &Analyzer{client: client, modelName: modelName}, nil
}

// AnalyzeText runs a grounded credibility analysis over text. Web sources
// consulted during grounding are attached to the result.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*models.AnalysisResult, *RequestLog, error) {
	startTime := time.Now()

	result, err := a.client.Models.GenerateContent(
		ctx,
		a.modelName,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: ANALYSIS_SYSTEM_INSTRUCTION}}},
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		},
	)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := sanitizer.SanitizeAnalysis(result.Text())
	if err != nil {
		logger.WarnWithFields("model returned no parseable analysis", logger.Fields{
			"model": a.modelName,
		})
		return nil, nil, err
	}
	analysis.Sources = sanitizer.SanitizeSources(groundingSources(result))

	return &analysis, a.requestLog(result, startTime), nil
}

func (a *Analyzer) requestLog(result *genai.GenerateContentResponse, startTime time.Time) *RequestLog {
	reqLog := &RequestLog{
		Response:    result.Text(),
		LatencyMs:   time.Since(startTime).Milliseconds(),
		ModelName:   a.modelName,
		GeneratedAt: time.Now(),
	}
	reqLog.ModelVersion = result.ModelVersion
	if result.UsageMetadata != nil {
		reqLog.TokenUsage = TokenUsage{
			InputTokens:  int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int64(result.UsageMetadata.TotalTokenCount),
		}
	}
	return reqLog
}

// groundingSources collects the web sources the model consulted while
// grounding its answer.
func groundingSources(result *genai.GenerateContentResponse) []models.Source {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}
	candidate := result.Candidates[0]
	if candidate == nil || candidate.GroundingMetadata == nil {
		return nil
	}

	var out []models.Source
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		out = append(out, models.Source{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return out
}
