package sanitizer

import (
	"encoding/json"
	"strings"

	"veritas-ai/models"
)

var imageVerdicts = []string{
	models.VerdictLikelyAI,
	models.VerdictPossiblyAI,
	models.VerdictLikelyCaptured,
}

// SanitizeImageAnalysis parses and sanitizes an image-analysis model
// response.
func SanitizeImageAnalysis(raw string) (models.ImageAnalysisResult, error) {
	obj, err := ExtractObject(raw)
	if err != nil {
		return models.ImageAnalysisResult{}, err
	}

	out := models.ImageAnalysisResult{
		Summary:          cleanString(obj["summary"], FallbackImageSummary),
		ContentWarnings:  stringList(obj["contentWarnings"], MaxIndicators, ""),
		SuggestedActions: stringList(obj["suggestedActions"], MaxIndicators, ""),
	}

	auth, _ := obj["authenticity"].(map[string]any)
	out.Authenticity = models.ImageAuthenticity{
		Verdict:    enumOr(auth["verdict"], imageVerdicts, models.VerdictPossiblyAI),
		Confidence: ClampScore(auth["confidence"]),
		Rationale:  cleanString(auth["rationale"], FallbackRationale),
		Indicators: stringList(auth["indicators"], MaxIndicators, FallbackIndicator),
	}
	if auth != nil {
		if _, present := auth["riskScore"]; present {
			score := ClampScore(auth["riskScore"])
			out.Authenticity.RiskScore = &score
		}
	}
	return out, nil
}

// SanitizeVisionFindings decodes reverse-image-search findings produced by
// the content service. Findings travel as raw JSON between services, so the
// same clamping applies here as to model output.
func SanitizeVisionFindings(raw []byte) (models.VisionFindings, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return models.VisionFindings{}, ErrNoStructuredResponse
	}
	return models.VisionFindings{
		AIScore:           ClampScore(obj["aiScore"]),
		Verdict:           enumOr(obj["verdict"], imageVerdicts, models.VerdictPossiblyAI),
		Confidence:        ClampScore(obj["confidence"]),
		Rationale:         cleanString(obj["rationale"], FallbackRationale),
		Indicators:        stringList(obj["indicators"], MaxIndicators, ""),
		Warnings:          stringList(obj["warnings"], MaxIndicators, ""),
		SuggestedActions:  stringList(obj["suggestedActions"], MaxIndicators, ""),
		BestGuessLabels:   stringList(obj["bestGuessLabels"], MaxIndicators, ""),
		LabelHints:        stringList(obj["labelHints"], MaxIndicators, ""),
		SuspiciousDomains: stringList(obj["suspiciousDomains"], MaxIndicators, ""),
	}, nil
}

// verdictSeverity orders authenticity verdicts from least to most concerning.
var verdictSeverity = map[string]int{
	models.VerdictLikelyCaptured: 0,
	models.VerdictPossiblyAI:     1,
	models.VerdictLikelyAI:       2,
}

// ApplyRiskAudit merges a second-pass risk audit into an image analysis.
// The audit can only raise concern, never lower it: the verdict and risk
// score take the more severe of the two, and audit warnings and indicators
// are appended without duplicates.
func ApplyRiskAudit(result models.ImageAnalysisResult, audit models.ImageAnalysisResult) models.ImageAnalysisResult {
	if verdictSeverity[audit.Authenticity.Verdict] > verdictSeverity[result.Authenticity.Verdict] {
		result.Authenticity.Verdict = audit.Authenticity.Verdict
	}
	if audit.Authenticity.RiskScore != nil {
		if result.Authenticity.RiskScore == nil || *audit.Authenticity.RiskScore > *result.Authenticity.RiskScore {
			score := *audit.Authenticity.RiskScore
			result.Authenticity.RiskScore = &score
		}
	}
	result.Authenticity.Indicators = appendUnique(result.Authenticity.Indicators, audit.Authenticity.Indicators)
	result.ContentWarnings = appendUnique(result.ContentWarnings, audit.ContentWarnings)
	result.SuggestedActions = appendUnique(result.SuggestedActions, audit.SuggestedActions)
	return result
}

func appendUnique(base []string, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, s := range base {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range extra {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup || s == FallbackIndicator {
			continue
		}
		seen[key] = struct{}{}
		base = append(base, s)
	}
	return base
}
