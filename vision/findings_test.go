package vision

import (
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veritas-ai/models"
)

func TestReduceAnnotationsGeneratorSignals(t *testing.T) {
	web := &visionpb.WebDetection{
		BestGuessLabels: []*visionpb.WebDetection_WebLabel{
			{Label: "midjourney portrait"},
		},
		WebEntities: []*visionpb.WebDetection_WebEntity{
			{Description: "AI art"},
			{Description: "Portrait"},
		},
		PagesWithMatchingImages: []*visionpb.WebDetection_WebPage{
			{Url: "https://www.gallery.example/ai-generated/123", PageTitle: "AI generated portraits"},
			{Url: "https://forum.example/thread/9", PageTitle: "cool picture thread"},
		},
	}

	got := reduceAnnotations(web, nil)

	assert.Equal(t, models.VerdictLikelyAI, got.Verdict)
	assert.GreaterOrEqual(t, got.AIScore, 75)
	assert.Contains(t, got.SuspiciousDomains, "gallery.example")
	assert.NotContains(t, got.SuspiciousDomains, "forum.example")
	assert.Equal(t, []string{"midjourney portrait"}, got.BestGuessLabels)
	assert.NotEmpty(t, got.SuggestedActions)
}

func TestReduceAnnotationsCleanImage(t *testing.T) {
	web := &visionpb.WebDetection{
		BestGuessLabels: []*visionpb.WebDetection_WebLabel{
			{Label: "street photography"},
		},
		PagesWithMatchingImages: []*visionpb.WebDetection_WebPage{
			{Url: "https://news.example/story", PageTitle: "City marathon draws record crowd"},
		},
	}

	got := reduceAnnotations(web, nil)

	assert.Equal(t, models.VerdictLikelyCaptured, got.Verdict)
	assert.Equal(t, 0, got.AIScore)
	assert.Empty(t, got.Indicators)
	assert.Empty(t, got.SuspiciousDomains)
	assert.Empty(t, got.SuggestedActions)
}

func TestReduceAnnotationsNoHistory(t *testing.T) {
	got := reduceAnnotations(&visionpb.WebDetection{}, nil)

	assert.Equal(t, models.VerdictLikelyCaptured, got.Verdict)
	assert.Contains(t, got.Rationale, "no visible history")
	assert.Equal(t, 25, got.Confidence)
}

func TestReduceAnnotationsScoreClamped(t *testing.T) {
	pages := make([]*visionpb.WebDetection_WebPage, 0, 10)
	for i := 0; i < 10; i++ {
		pages = append(pages, &visionpb.WebDetection_WebPage{
			Url:       "https://site.example/ai-generated",
			PageTitle: "stable diffusion showcase",
		})
	}
	web := &visionpb.WebDetection{PagesWithMatchingImages: pages}

	got := reduceAnnotations(web, nil)

	assert.Equal(t, 100, got.AIScore)
	assert.LessOrEqual(t, got.Confidence, 90)
	// duplicate hosts collapse to one domain entry
	require.Len(t, got.SuspiciousDomains, 1)
}

func TestSafeSearchWarnings(t *testing.T) {
	safe := &visionpb.SafeSearchAnnotation{
		Adult:    visionpb.Likelihood_VERY_LIKELY,
		Violence: visionpb.Likelihood_POSSIBLE,
		Spoof:    visionpb.Likelihood_LIKELY,
	}

	got := safeSearchWarnings(safe)

	require.Len(t, got, 2)
	assert.Contains(t, got[0], "adult content")
	assert.Contains(t, got[1], "altered or spoofed")

	assert.Nil(t, safeSearchWarnings(nil))
}
