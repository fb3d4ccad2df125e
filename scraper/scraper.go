// Package scraper fetches a web page and reduces it to clean article text
// sized for a model prompt.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"veritas-ai/config"
	"veritas-ai/logger"
	"veritas-ai/renderer"
)

// ScrapeError carries the HTTP status the content service should answer
// with for a failed scrape.
type ScrapeError struct {
	StatusCode int
	Message    string
}

func (e *ScrapeError) Error() string {
	return e.Message
}

// Result is the cleaned page content returned to callers.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	// Truncated is set when the extracted text exceeded the configured cap.
	Truncated bool `json:"truncated"`
}

type Scraper struct {
	client *http.Client
	cfg    config.ScrapeConfig
}

func NewScraper(cfg config.ScrapeConfig) *Scraper {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scraper{
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
	}
}

// Scrape fetches rawURL and extracts its article text. Client-rendered pages
// whose static HTML yields too little text are retried through headless
// Chrome.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (*Result, error) {
	target, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, &ScrapeError{StatusCode: http.StatusBadRequest, Message: "invalid URL"}
	}

	htmlStr, err := s.fetch(ctx, target.String())
	if err != nil {
		return nil, err
	}

	article := extractArticle(htmlStr)
	if article == nil || len(article.PlainTextContent) < s.cfg.RenderThresholdChars {
		rendered, renderErr := renderer.RenderHTML(ctx, target.String())
		if renderErr != nil {
			logger.WarnWithFields("static extraction thin and render fallback failed", logger.Fields{
				"url":   target.String(),
				"error": renderErr.Error(),
			})
		} else if renderedArticle := extractArticle(rendered); renderedArticle != nil {
			if article == nil || len(renderedArticle.PlainTextContent) > len(article.PlainTextContent) {
				article = renderedArticle
			}
		}
	}
	if article == nil {
		return nil, &ScrapeError{StatusCode: http.StatusBadRequest, Message: "no readable content found at this URL"}
	}

	content := collapseWhitespace(article.PlainTextContent)
	if len(content) < s.cfg.MinContentChars {
		return nil, &ScrapeError{StatusCode: http.StatusBadRequest, Message: "no readable content found at this URL"}
	}

	truncated := false
	if len(content) > s.cfg.MaxContentChars {
		content = cutOnRune(content, s.cfg.MaxContentChars) + "..."
		truncated = true
	}

	return &Result{
		URL:       target.String(),
		Title:     strings.TrimSpace(article.Title),
		Content:   content,
		Truncated: truncated,
	}, nil
}

func (s *Scraper) fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &ScrapeError{StatusCode: http.StatusBadRequest, Message: "invalid URL"}
	}
	// some publishers reject clients without browser-looking headers
	req.Header.Set("User-Agent", renderer.USER_AGENT)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", classifyFetchError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusForbidden:
		return "", &ScrapeError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("the page responded with status %d", resp.StatusCode),
		}
	case resp.StatusCode >= 400:
		return "", &ScrapeError{
			StatusCode: http.StatusInternalServerError,
			Message:    fmt.Sprintf("failed to fetch the page (status %d)", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ScrapeError{StatusCode: http.StatusInternalServerError, Message: "failed to read the page body"}
	}
	return string(body), nil
}

func classifyFetchError(err error) *ScrapeError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ScrapeError{StatusCode: http.StatusRequestTimeout, Message: "the page took too long to respond"}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &ScrapeError{StatusCode: http.StatusServiceUnavailable, Message: "could not connect to the page"}
	}
	return &ScrapeError{StatusCode: http.StatusInternalServerError, Message: "failed to fetch the page"}
}
