package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veritas-ai/models"
)

func TestSanitizeImageAnalysis(t *testing.T) {
	raw := "```json\n" + `{
		"summary": "A street photo with unusually smooth textures.",
		"authenticity": {
			"verdict": "Likely AI-generated",
			"confidence": 83,
			"rationale": "Repeated texture patterns and malformed signage.",
			"indicators": ["warped text", "plastic skin"],
			"riskScore": 140
		},
		"contentWarnings": ["possible impersonation"],
		"suggestedActions": ["run a reverse image search"]
	}` + "\n```"

	got, err := SanitizeImageAnalysis(raw)
	require.NoError(t, err)

	assert.Equal(t, "A street photo with unusually smooth textures.", got.Summary)
	assert.Equal(t, models.VerdictLikelyAI, got.Authenticity.Verdict)
	assert.Equal(t, 83, got.Authenticity.Confidence)
	require.NotNil(t, got.Authenticity.RiskScore)
	assert.Equal(t, 100, *got.Authenticity.RiskScore)
	assert.Equal(t, []string{"possible impersonation"}, got.ContentWarnings)
}

func TestSanitizeImageAnalysisDefaults(t *testing.T) {
	got, err := SanitizeImageAnalysis(`{"authenticity": {"verdict": "nonsense"}}`)
	require.NoError(t, err)

	assert.Equal(t, FallbackImageSummary, got.Summary)
	assert.Equal(t, models.VerdictPossiblyAI, got.Authenticity.Verdict)
	assert.Equal(t, FallbackRationale, got.Authenticity.Rationale)
	assert.Equal(t, []string{FallbackIndicator}, got.Authenticity.Indicators)
	assert.Nil(t, got.Authenticity.RiskScore)
	assert.Empty(t, got.ContentWarnings)
}

func TestSanitizeImageAnalysisRejectsProseOnly(t *testing.T) {
	_, err := SanitizeImageAnalysis("I am unable to inspect this image.")
	assert.ErrorIs(t, err, ErrNoStructuredResponse)
}

func TestSanitizeVisionFindings(t *testing.T) {
	raw := []byte(`{
		"aiScore": 91.2,
		"verdict": "Likely AI-generated",
		"confidence": 70,
		"rationale": "Matches pages on known generator galleries.",
		"indicators": ["hosted on an AI art gallery"],
		"bestGuessLabels": ["digital art"],
		"suspiciousDomains": ["gallery.example", "gallery.example", "forum.example"]
	}`)

	got, err := SanitizeVisionFindings(raw)
	require.NoError(t, err)

	assert.Equal(t, 91, got.AIScore)
	assert.Equal(t, models.VerdictLikelyAI, got.Verdict)
	assert.Equal(t, []string{"digital art"}, got.BestGuessLabels)
	// truncation applies, trimming does not dedupe
	assert.Len(t, got.SuspiciousDomains, 3)
}

func TestSanitizeVisionFindingsBadPayload(t *testing.T) {
	_, err := SanitizeVisionFindings([]byte("<html>bad gateway</html>"))
	assert.ErrorIs(t, err, ErrNoStructuredResponse)
}

func TestApplyRiskAuditOnlyRaises(t *testing.T) {
	low, high := 20, 65

	base := models.ImageAnalysisResult{
		Authenticity: models.ImageAuthenticity{
			Verdict:    models.VerdictLikelyCaptured,
			Indicators: []string{"EXIF data present"},
			RiskScore:  &high,
		},
		ContentWarnings: []string{"none"},
	}
	audit := models.ImageAnalysisResult{
		Authenticity: models.ImageAuthenticity{
			Indicators: []string{"EXIF data present", "metadata recently rewritten"},
			RiskScore:  &low,
		},
		ContentWarnings:  []string{"possible tampering"},
		SuggestedActions: []string{"verify with the original poster"},
	}

	got := ApplyRiskAudit(base, audit)

	// a lower audit score never lowers the result
	require.NotNil(t, got.Authenticity.RiskScore)
	assert.Equal(t, 65, *got.Authenticity.RiskScore)
	assert.Equal(t, []string{"EXIF data present", "metadata recently rewritten"}, got.Authenticity.Indicators)
	assert.Equal(t, []string{"none", "possible tampering"}, got.ContentWarnings)
	assert.Equal(t, []string{"verify with the original poster"}, got.SuggestedActions)

	raised := models.ImageAnalysisResult{Authenticity: models.ImageAuthenticity{RiskScore: &high}}
	got = ApplyRiskAudit(models.ImageAnalysisResult{}, raised)
	require.NotNil(t, got.Authenticity.RiskScore)
	assert.Equal(t, 65, *got.Authenticity.RiskScore)
}

func TestApplyRiskAuditRaisesVerdict(t *testing.T) {
	cases := []struct {
		name        string
		base, audit string
		want        string
	}{
		{"audit escalates captured to ai", models.VerdictLikelyCaptured, models.VerdictLikelyAI, models.VerdictLikelyAI},
		{"audit escalates captured to assisted", models.VerdictLikelyCaptured, models.VerdictPossiblyAI, models.VerdictPossiblyAI},
		{"audit never de-escalates", models.VerdictLikelyAI, models.VerdictLikelyCaptured, models.VerdictLikelyAI},
		{"equal verdict unchanged", models.VerdictPossiblyAI, models.VerdictPossiblyAI, models.VerdictPossiblyAI},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			base := models.ImageAnalysisResult{Authenticity: models.ImageAuthenticity{Verdict: c.base}}
			audit := models.ImageAnalysisResult{Authenticity: models.ImageAuthenticity{Verdict: c.audit}}
			got := ApplyRiskAudit(base, audit)
			assert.Equal(t, c.want, got.Authenticity.Verdict)
		})
	}
}
