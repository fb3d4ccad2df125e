package analyzer

import (
	"context"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"
)

const languageSampleChars = 1000

// languageSample bounds the text sent for detection, never splitting a rune.
func languageSample(text string) string {
	if len(text) <= languageSampleChars {
		return text
	}
	cut := languageSampleChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// DetectLanguage names the dominant language of the text. Failures never
// block an analysis; the caller gets "Unknown" instead of an error.
func (a *Analyzer) DetectLanguage(ctx context.Context, text string) string {
	sample := languageSample(text)
	if strings.TrimSpace(sample) == "" {
		return "Unknown"
	}

	result, err := a.client.Models.GenerateContent(
		ctx,
		a.modelName,
		genai.Text(sample),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: LANGUAGE_SYSTEM_INSTRUCTION}}},
		},
	)
	if err != nil {
		return "Unknown"
	}

	name := strings.TrimSpace(result.Text())
	// a real language name is one short word or phrase
	if name == "" || len(name) >= 50 {
		return "Unknown"
	}
	return name
}
