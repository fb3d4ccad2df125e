package vision

import (
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"veritas-ai/models"
)

// generatorMarkers are phrases that, when found in web-detection labels,
// entities or matching page titles, indicate the image circulates as
// AI-generated content.
var generatorMarkers = []string{
	"ai generated",
	"ai-generated",
	"generated by ai",
	"ai art",
	"midjourney",
	"stable diffusion",
	"dall-e",
	"dalle",
	"flux",
	"deepfake",
	"synthetic image",
	"text to image",
	"text-to-image",
}

const maxListedItems = 6

// reduceAnnotations converts raw web-detection and safe-search annotations
// into scored findings. Scoring is additive over independent signals and
// clamped to [0,100].
func reduceAnnotations(web *visionpb.WebDetection, safe *visionpb.SafeSearchAnnotation) models.VisionFindings {
	var (
		score       int
		indicators  []string
		labels      []string
		labelHints  []string
		domains     []string
		seenDomains = map[string]struct{}{}
		matches     int
	)

	if web != nil {
		for _, g := range web.BestGuessLabels {
			if g == nil || strings.TrimSpace(g.Label) == "" {
				continue
			}
			label := strings.TrimSpace(g.Label)
			labels = append(labels, label)
			if marker := matchMarker(label); marker != "" {
				score += 35
				indicators = append(indicators, fmt.Sprintf("best guess label mentions %q", marker))
			}
		}

		for _, e := range web.WebEntities {
			if e == nil || strings.TrimSpace(e.Description) == "" {
				continue
			}
			desc := strings.TrimSpace(e.Description)
			if len(labelHints) < maxListedItems {
				labelHints = append(labelHints, desc)
			}
			if marker := matchMarker(desc); marker != "" {
				score += 25
				indicators = append(indicators, fmt.Sprintf("web entity mentions %q", marker))
			}
		}

		for _, p := range web.PagesWithMatchingImages {
			if p == nil || p.Url == "" {
				continue
			}
			matches++
			marker := matchMarker(p.PageTitle)
			if marker == "" {
				marker = matchMarker(p.Url)
			}
			if marker == "" {
				continue
			}
			score += 20
			if host := hostOf(p.Url); host != "" {
				if _, dup := seenDomains[host]; !dup && len(domains) < maxListedItems {
					seenDomains[host] = struct{}{}
					domains = append(domains, host)
					indicators = append(indicators, fmt.Sprintf("matching image on %s tagged %q", host, marker))
				}
			}
		}
	}

	if score > 100 {
		score = 100
	}

	verdict := models.VerdictLikelyCaptured
	switch {
	case score >= 75:
		verdict = models.VerdictLikelyAI
	case score >= 45:
		verdict = models.VerdictPossiblyAI
	}

	confidence := 25 + 10*len(indicators) + 5*min(matches, 5)
	if confidence > 90 {
		confidence = 90
	}

	rationale := "No reverse-image matches associate this image with AI generation."
	if len(indicators) > 0 {
		rationale = fmt.Sprintf("Reverse image search surfaced %d signal(s) associating this image with AI generation.", len(indicators))
	} else if matches == 0 {
		rationale = "The image has no visible history on the web, which limits what reverse search can conclude."
	}

	findings := models.VisionFindings{
		AIScore:           score,
		Verdict:           verdict,
		Confidence:        confidence,
		Rationale:         rationale,
		Indicators:        truncateList(indicators),
		Warnings:          safeSearchWarnings(safe),
		BestGuessLabels:   truncateList(labels),
		LabelHints:        labelHints,
		SuspiciousDomains: domains,
	}
	if score >= 45 {
		findings.SuggestedActions = []string{
			"Treat the image as unverified until the original source is found.",
			"Check the listed domains for the earliest appearance of this image.",
		}
	}
	return findings
}

func matchMarker(s string) string {
	lower := strings.ToLower(s)
	for _, m := range generatorMarkers {
		if strings.Contains(lower, m) {
			return m
		}
	}
	return ""
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func truncateList(in []string) []string {
	if len(in) > maxListedItems {
		return in[:maxListedItems]
	}
	return in
}

func safeSearchWarnings(safe *visionpb.SafeSearchAnnotation) []string {
	if safe == nil {
		return nil
	}
	var out []string
	add := func(likelihood visionpb.Likelihood, label string) {
		if likelihood == visionpb.Likelihood_LIKELY || likelihood == visionpb.Likelihood_VERY_LIKELY {
			out = append(out, label)
		}
	}
	add(safe.Adult, "The image likely contains adult content.")
	add(safe.Violence, "The image likely depicts violence.")
	add(safe.Medical, "The image likely contains graphic medical content.")
	add(safe.Spoof, "The image looks altered or spoofed.")
	add(safe.Racy, "The image likely contains racy content.")
	return out
}
