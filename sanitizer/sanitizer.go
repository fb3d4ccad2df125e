// Package sanitizer converts untrusted, loosely-typed model output into the
// strict internal result types. It never panics or partially applies: every
// call yields either a fully sanitized object or an error.
package sanitizer

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"veritas-ai/models"
)

// ErrNoStructuredResponse signals that no parseable JSON object could be
// located in the model response. Callers surface a generic retry message.
var ErrNoStructuredResponse = errors.New("no structured response from model")

// Named fallbacks used when the model omits or mangles a field.
const (
	FallbackSummary      = "No summary provided by the model."
	FallbackRationale    = "No rationale provided."
	FallbackIndicator    = "No explicit indicators were shared."
	FallbackImageSummary = "No description provided by the model."
)

// Truncation limits for list fields.
const (
	MaxKeyClaims  = 10
	MaxIndicators = 6
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractObject locates the JSON object inside a raw model response.
// The model may wrap JSON in a markdown fence and surround it with prose;
// extraction takes the fenced block if present, else the whole text, then
// slices from the first '{' to the last '}'.
func ExtractObject(raw string) (map[string]any, error) {
	candidate := raw
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	}

	first := strings.Index(candidate, "{")
	last := strings.LastIndex(candidate, "}")
	if first == -1 || last == -1 || last < first {
		return nil, ErrNoStructuredResponse
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate[first:last+1]), &obj); err != nil {
		return nil, ErrNoStructuredResponse
	}
	return obj, nil
}

// SanitizeAnalysis parses and sanitizes a text-analysis model response.
func SanitizeAnalysis(raw string) (models.AnalysisResult, error) {
	obj, err := ExtractObject(raw)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	return sanitizeAnalysisObject(obj), nil
}

func sanitizeAnalysisObject(obj map[string]any) models.AnalysisResult {
	out := models.AnalysisResult{
		CredibilityScore: ClampScore(obj["credibilityScore"]),
		Summary:          cleanString(obj["summary"], FallbackSummary),
		KeyClaims:        sanitizeKeyClaims(obj["keyClaims"]),
		Sources:          SanitizeSources(sourcesFromAny(obj["sources"])),
	}
	out.AIGeneration = sanitizeAIDetection(obj["aiGeneration"])
	out.BiasDetection = sanitizeBias(obj["biasDetection"])
	out.SentimentManipulation = sanitizeSentiment(obj["sentimentManipulation"])
	out.PredictiveAlerts = sanitizePredictiveAlerts(obj["predictiveAlerts"])
	return out
}

// ClampScore coerces any value to an integer score in [0,100].
// Non-numeric and non-finite values become 0.
func ClampScore(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// cleanString trims v and substitutes fallback when the result is empty or
// not a string at all.
func cleanString(v any, fallback string) string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// stringList filters v down to trimmed, non-empty strings, truncated to max.
// When fallback is non-empty an otherwise-empty result becomes a
// single-element fallback list.
func stringList(v any, max int, fallback string) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, _ := it.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	if len(out) == 0 && fallback != "" {
		return []string{fallback}
	}
	return out
}

// enumOr returns v when it is one of allowed (after trimming), else def.
func enumOr(v any, allowed []string, def string) string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

func sanitizeKeyClaims(v any) []models.KeyClaim {
	items, _ := v.([]any)
	out := make([]models.KeyClaim, 0, len(items))
	for _, it := range items {
		m, _ := it.(map[string]any)
		if m == nil {
			continue
		}
		claim, _ := m["claim"].(string)
		assessment, _ := m["assessment"].(string)
		claim = strings.TrimSpace(claim)
		assessment = strings.TrimSpace(assessment)
		if claim == "" || assessment == "" {
			// entries missing either string field are dropped
			continue
		}
		misleading, _ := m["isMisleading"].(bool)
		out = append(out, models.KeyClaim{
			Claim:        claim,
			Assessment:   assessment,
			IsMisleading: misleading,
		})
		if len(out) == MaxKeyClaims {
			break
		}
	}
	return out
}

func sourcesFromAny(v any) []models.Source {
	items, _ := v.([]any)
	out := make([]models.Source, 0, len(items))
	for _, it := range items {
		m, _ := it.(map[string]any)
		if m == nil {
			continue
		}
		uri, _ := m["uri"].(string)
		title, _ := m["title"].(string)
		out = append(out, models.Source{URI: strings.TrimSpace(uri), Title: strings.TrimSpace(title)})
	}
	return out
}

// SanitizeSources drops entries missing uri or title and deduplicates by uri,
// keeping first occurrence order.
func SanitizeSources(in []models.Source) []models.Source {
	out := make([]models.Source, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		uri := strings.TrimSpace(s.URI)
		title := strings.TrimSpace(s.Title)
		if uri == "" || title == "" {
			continue
		}
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		out = append(out, models.Source{URI: uri, Title: title})
	}
	return out
}

var textVerdicts = []string{
	models.VerdictLikelyAI,
	models.VerdictPossiblyAI,
	models.VerdictLikelyHuman,
}

// The whole aiGeneration section is omitted when the verdict is absent or
// unrecognized.
func sanitizeAIDetection(v any) *models.AIGenerationAssessment {
	m, _ := v.(map[string]any)
	if m == nil {
		return nil
	}
	verdict := enumOr(m["verdict"], textVerdicts, "")
	if verdict == "" {
		return nil
	}
	return &models.AIGenerationAssessment{
		Verdict:         verdict,
		LikelihoodScore: ClampScore(m["likelihoodScore"]),
		Confidence:      ClampScore(m["confidence"]),
		Rationale:       cleanString(m["rationale"], FallbackRationale),
		Indicators:      stringList(m["indicators"], MaxIndicators, FallbackIndicator),
	}
}

var biasVerdicts = []string{
	models.BiasNone,
	models.BiasSlight,
	models.BiasModerate,
	models.BiasStrong,
}

func sanitizeBias(v any) *models.BiasDetection {
	m, _ := v.(map[string]any)
	if m == nil {
		return nil
	}
	return &models.BiasDetection{
		Verdict:    enumOr(m["verdict"], biasVerdicts, models.BiasNone),
		Score:      ClampScore(m["score"]),
		Rationale:  cleanString(m["rationale"], FallbackRationale),
		Indicators: stringList(m["indicators"], MaxIndicators, FallbackIndicator),
	}
}

var manipulationVerdicts = []string{
	models.ManipulationNone,
	models.ManipulationMild,
	models.ManipulationModerate,
	models.ManipulationHeavy,
}

func sanitizeSentiment(v any) *models.SentimentManipulation {
	m, _ := v.(map[string]any)
	if m == nil {
		return nil
	}
	return &models.SentimentManipulation{
		Verdict:    enumOr(m["verdict"], manipulationVerdicts, models.ManipulationNone),
		Score:      ClampScore(m["score"]),
		Rationale:  cleanString(m["rationale"], FallbackRationale),
		Techniques: stringList(m["techniques"], MaxIndicators, ""),
	}
}

func sanitizePredictiveAlerts(v any) *models.PredictiveAlerts {
	m, _ := v.(map[string]any)
	if m == nil {
		return nil
	}
	return &models.PredictiveAlerts{
		RiskScore: ClampScore(m["riskScore"]),
		Rationale: cleanString(m["rationale"], FallbackRationale),
		Alerts:    stringList(m["alerts"], MaxIndicators, ""),
	}
}
