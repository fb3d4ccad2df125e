package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"veritas-ai/analyzer"
	"veritas-ai/cmd/api/clients/contentclient"
	"veritas-ai/cmd/api/quota"
	"veritas-ai/eventbus"
	"veritas-ai/logger"
	"veritas-ai/models"
	"veritas-ai/repositories"
	"veritas-ai/sanitizer"
)

// ErrQuotaExhausted means the daily model-call budget is spent.
var ErrQuotaExhausted = errors.New("analysis quota exhausted for today")

type AnalysisService struct {
	analyzer  *analyzer.Analyzer
	content   *contentclient.Client
	analyses  *repositories.AnalysisRepository
	limiter   *quota.AnalysisQuotaLimiter
	bus       eventbus.EventBus
	community *CommunityService
}

func NewAnalysisService(
	a *analyzer.Analyzer,
	content *contentclient.Client,
	analyses *repositories.AnalysisRepository,
	limiter *quota.AnalysisQuotaLimiter,
	bus eventbus.EventBus,
	community *CommunityService,
) *AnalysisService {
	return &AnalysisService{
		analyzer:  a,
		content:   content,
		analyses:  analyses,
		limiter:   limiter,
		bus:       bus,
		community: community,
	}
}

type analysisCompletedEvent struct {
	AnalysisID       string `json:"analysis_id"`
	UserID           string `json:"user_id"`
	Kind             string `json:"kind"`
	CredibilityScore int    `json:"credibility_score,omitempty"`
}

// AnalyzeText assesses raw text and stores the result in the caller's
// history.
func (s *AnalysisService) AnalyzeText(ctx context.Context, userID, text string) (*models.AnalysisRecord, error) {
	return s.runTextAnalysis(ctx, userID, models.AnalysisKindText, text, text)
}

// AnalyzeURL scrapes the page through the content service, then assesses the
// extracted article text. Scrape failures pass through with the content
// service's status code.
func (s *AnalysisService) AnalyzeURL(ctx context.Context, userID, pageURL string) (*models.AnalysisRecord, error) {
	scraped, err := s.content.Scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.runTextAnalysis(ctx, userID, models.AnalysisKindURL, pageURL, scraped.Content)
}

func (s *AnalysisService) runTextAnalysis(ctx context.Context, userID, kind, query, text string) (*models.AnalysisRecord, error) {
	ok, err := s.limiter.WaitAndReserve(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuotaExhausted
	}

	language := s.analyzer.DetectLanguage(ctx, text)

	result, reqLog, err := s.analyzer.AnalyzeText(ctx, text)
	if err != nil {
		return nil, err
	}
	logger.InfoWithFields("text analysis complete", logger.Fields{
		"kind":       kind,
		"latency_ms": reqLog.LatencyMs,
		"tokens":     reqLog.TokenUsage.TotalTokens,
		"model":      reqLog.ModelName,
	})

	record := &models.AnalysisRecord{
		UserID:   userID,
		Kind:     kind,
		Query:    query,
		Language: language,
		Result:   result,
	}
	if err := s.analyses.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.seedCommunityEntry(ctx, record, result)
	s.publishCompleted(ctx, record, result.CredibilityScore)
	return record, nil
}

const maxHeadlineChars = 140

// headlineFrom bounds the submitted query to a feed headline, cutting on a
// rune boundary so multibyte text stays valid.
func headlineFrom(query string) string {
	if len(query) <= maxHeadlineChars {
		return query
	}
	cut := maxHeadlineChars
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}

// seedCommunityEntry merges a finished text or URL analysis into the
// community feed under the analysis id. Best effort: the analysis response
// does not depend on it.
func (s *AnalysisService) seedCommunityEntry(ctx context.Context, record *models.AnalysisRecord, result *models.AnalysisResult) {
	headline := headlineFrom(record.Query)

	entry := &models.CommunityEntry{
		ID:               record.ID,
		Headline:         headline,
		Summary:          result.Summary,
		Timestamp:        record.CreatedAt,
		CredibilityScore: result.CredibilityScore,
	}
	if result.AIGeneration != nil {
		entry.AIVerdict = result.AIGeneration.Verdict
		entry.AIDetection = result.AIGeneration
	}

	if err := s.community.Seed(ctx, entry); err != nil {
		logger.WarnWithFields("failed to seed community entry from analysis", logger.Fields{
			"analysis_id": record.ID,
			"error":       err.Error(),
		})
	}
}

// AnalyzeImage assesses an uploaded image: reverse image search through the
// content service first (best effort), then the multimodal model pass and a
// second risk audit.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, userID string, img []byte, mimeType string) (*models.AnalysisRecord, *models.VisionFindings, error) {
	ok, err := s.limiter.WaitAndReserve(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrQuotaExhausted
	}

	var findings *models.VisionFindings
	if raw, err := s.content.VisionAnalyze(ctx, img, mimeType); err != nil {
		logger.WarnWithFields("vision findings unavailable, analyzing image without them", logger.Fields{
			"error": err.Error(),
		})
	} else if sanitized, err := sanitizer.SanitizeVisionFindings(raw); err == nil {
		findings = &sanitized
	}

	result, reqLog, err := s.analyzer.AnalyzeImage(ctx, img, mimeType, findings)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoWithFields("image analysis complete", logger.Fields{
		"latency_ms": reqLog.LatencyMs,
		"tokens":     reqLog.TokenUsage.TotalTokens,
		"model":      reqLog.ModelName,
	})

	// second pass may only raise concern, never lower it
	if audited, err := s.analyzer.AuditImageRisk(ctx, img, mimeType, *result); err != nil {
		logger.WarnWithFields("image risk audit failed, keeping first-pass result", logger.Fields{
			"error": err.Error(),
		})
	} else {
		result = audited
	}

	record := &models.AnalysisRecord{
		UserID:      userID,
		Kind:        models.AnalysisKindImage,
		Query:       "image upload",
		ImageResult: result,
	}
	if err := s.analyses.Insert(ctx, record); err != nil {
		return nil, nil, err
	}

	s.publishCompleted(ctx, record, 0)
	return record, findings, nil
}

// History lists the caller's past analyses, newest first.
func (s *AnalysisService) History(ctx context.Context, userID string, limit int) ([]models.AnalysisRecord, error) {
	return s.analyses.ListByUser(ctx, userID, limit)
}

func (s *AnalysisService) publishCompleted(ctx context.Context, record *models.AnalysisRecord, score int) {
	event := eventbus.NewEvent(analysisCompletedEvent{
		AnalysisID:       record.ID,
		UserID:           record.UserID,
		Kind:             record.Kind,
		CredibilityScore: score,
	})
	if err := s.bus.Publish(ctx, eventbus.TopicAnalysisCompleted, event); err != nil {
		logger.WarnWithFields("failed to publish analysis event", logger.Fields{
			"analysis_id": record.ID,
			"error":       err.Error(),
		})
	}
}
