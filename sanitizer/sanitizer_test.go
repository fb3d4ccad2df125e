package sanitizer

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veritas-ai/models"
)

func TestExtractObjectFencedWithProse(t *testing.T) {
	raw := "Sure, here is the analysis you asked for:\n```json\n{\"credibilityScore\": 72}\n```\nLet me know if you need anything else."

	obj, err := ExtractObject(raw)
	require.NoError(t, err)
	assert.Equal(t, float64(72), obj["credibilityScore"])
}

func TestExtractObjectBareBraces(t *testing.T) {
	raw := "prefix {\"summary\": \"ok\"} suffix"

	obj, err := ExtractObject(raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", obj["summary"])
}

func TestExtractObjectNoJSON(t *testing.T) {
	for _, raw := range []string{"", "I cannot help with that.", "```json\nnot json\n```"} {
		_, err := ExtractObject(raw)
		assert.ErrorIs(t, err, ErrNoStructuredResponse)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"in range", float64(72), 72},
		{"above range", float64(150), 100},
		{"below range", float64(-3), 0},
		{"rounded", 49.6, 50},
		{"numeric string", "88", 88},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"missing", nil, 0},
		{"garbage", "high", 0},
		{"object", map[string]any{}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampScore(tc.in))
		})
	}
}

func TestSanitizeAnalysisFallbacks(t *testing.T) {
	raw := "Here you go: ```json\n{\"credibilityScore\": 150, \"summary\": \"\", \"keyClaims\": []}\n```"

	got, err := SanitizeAnalysis(raw)
	require.NoError(t, err)

	assert.Equal(t, 100, got.CredibilityScore)
	assert.Equal(t, FallbackSummary, got.Summary)
	assert.Empty(t, got.KeyClaims)
	assert.Empty(t, got.Sources)
	assert.Nil(t, got.AIGeneration)
	assert.Nil(t, got.BiasDetection)
}

func TestSanitizeAnalysisFullObject(t *testing.T) {
	raw := `{
		"credibilityScore": "63",
		"summary": "  Mostly accurate reporting with some framing issues.  ",
		"keyClaims": [
			{"claim": "Claim A", "assessment": "Supported by cited data", "isMisleading": false},
			{"claim": "", "assessment": "dropped, no claim"},
			{"claim": "Claim B", "assessment": "Exaggerated", "isMisleading": true}
		],
		"sources": [
			{"uri": "https://example.org/a", "title": "Example A"},
			{"uri": "https://example.org/a", "title": "Duplicate"},
			{"uri": "https://example.org/b", "title": ""}
		],
		"aiGeneration": {
			"verdict": "Possibly AI-assisted",
			"likelihoodScore": 54.4,
			"confidence": 120,
			"rationale": "",
			"indicators": ["uniform sentence length", "", "  generic phrasing "]
		},
		"biasDetection": {
			"verdict": "made-up verdict",
			"score": 40,
			"rationale": "Leans on loaded adjectives."
		}
	}`

	got, err := SanitizeAnalysis(raw)
	require.NoError(t, err)

	assert.Equal(t, 63, got.CredibilityScore)
	assert.Equal(t, "Mostly accurate reporting with some framing issues.", got.Summary)

	require.Len(t, got.KeyClaims, 2)
	assert.Equal(t, "Claim A", got.KeyClaims[0].Claim)
	assert.True(t, got.KeyClaims[1].IsMisleading)

	require.Len(t, got.Sources, 1)
	assert.Equal(t, "https://example.org/a", got.Sources[0].URI)

	require.NotNil(t, got.AIGeneration)
	assert.Equal(t, models.VerdictPossiblyAI, got.AIGeneration.Verdict)
	assert.Equal(t, 54, got.AIGeneration.LikelihoodScore)
	assert.Equal(t, 100, got.AIGeneration.Confidence)
	assert.Equal(t, FallbackRationale, got.AIGeneration.Rationale)
	assert.Equal(t, []string{"uniform sentence length", "generic phrasing"}, got.AIGeneration.Indicators)

	require.NotNil(t, got.BiasDetection)
	assert.Equal(t, models.BiasNone, got.BiasDetection.Verdict)
	assert.Equal(t, []string{FallbackIndicator}, got.BiasDetection.Indicators)
}

func TestSanitizeAnalysisDropsUnknownVerdictSection(t *testing.T) {
	raw := `{"credibilityScore": 10, "summary": "x", "aiGeneration": {"verdict": "Definitely a robot"}}`

	got, err := SanitizeAnalysis(raw)
	require.NoError(t, err)
	assert.Nil(t, got.AIGeneration)
}

func TestSanitizeKeyClaimsTruncation(t *testing.T) {
	items := make([]any, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, map[string]any{"claim": "c", "assessment": "a"})
	}
	assert.Len(t, sanitizeKeyClaims(items), MaxKeyClaims)
}

func TestSanitizeSourcesKeepsFirstOccurrence(t *testing.T) {
	in := []models.Source{
		{URI: "https://a", Title: "first"},
		{URI: "https://b", Title: "b"},
		{URI: "https://a", Title: "second"},
	}
	got := SanitizeSources(in)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
}

// Sanitizing an already sanitized result must not change it.
func TestSanitizeAnalysisIdempotent(t *testing.T) {
	raw := `{
		"credibilityScore": 999,
		"summary": "",
		"keyClaims": [{"claim": "c", "assessment": "a", "isMisleading": true}],
		"sources": [{"uri": "https://x", "title": "X"}],
		"aiGeneration": {"verdict": "Likely AI-generated", "likelihoodScore": -5, "indicators": []}
	}`

	first, err := SanitizeAnalysis(raw)
	require.NoError(t, err)

	encoded, err := marshalForRoundTrip(first)
	require.NoError(t, err)

	second, err := SanitizeAnalysis(encoded)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func marshalForRoundTrip(r models.AnalysisResult) (string, error) {
	b, err := json.Marshal(r)
	return string(b), err
}
