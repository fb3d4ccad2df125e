package scraper

import (
	"strings"
	"unicode/utf8"

	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// ExtractedArticle is the article body pulled out of raw HTML.
type ExtractedArticle struct {
	PlainTextContent string
	Title            string
	TopImage         string
}

func extractWithReadability(htmlStr string) (*ExtractedArticle, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}

	article, err := readability.FromDocument(doc, nil)
	if err != nil {
		return nil, err
	}
	return &ExtractedArticle{
		PlainTextContent: article.TextContent,
		Title:            article.Title,
		TopImage:         article.Image,
	}, nil
}

func extractWithTrafilatura(htmlStr string) (*ExtractedArticle, error) {
	opts := trafilatura.Options{
		IncludeImages: true,
	}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return nil, err
	}
	return &ExtractedArticle{
		PlainTextContent: article.ContentText,
		Title:            article.Metadata.Title,
		TopImage:         article.Metadata.Image,
	}, nil
}

func extractWithGoose(htmlStr string) (*ExtractedArticle, error) {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, "")
	if err != nil {
		return nil, err
	}
	return &ExtractedArticle{
		PlainTextContent: article.CleanedText,
		Title:            article.Title,
		TopImage:         article.TopImage,
	}, nil
}

// extractArticle runs the extractors in order of output quality and returns
// the first non-empty result.
func extractArticle(htmlStr string) *ExtractedArticle {
	extractors := []func(string) (*ExtractedArticle, error){
		extractWithReadability,
		extractWithTrafilatura,
		extractWithGoose,
	}
	for _, extract := range extractors {
		article, err := extract(htmlStr)
		if err != nil {
			continue
		}
		if strings.TrimSpace(article.PlainTextContent) != "" {
			return article
		}
	}
	return nil
}

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cutOnRune truncates s to at most max bytes without splitting a rune.
func cutOnRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
