package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veritas-ai/config"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Reservoir Levels Hit Decade Low</title></head>
<body>
<article>
<h1>Reservoir Levels Hit Decade Low</h1>
<p>Water authorities reported on Thursday that reservoir levels across the
region have fallen to their lowest point in ten years, prompting calls for
voluntary conservation measures.</p>
<p>Officials attributed the decline to two consecutive dry winters and said
restrictions would be considered if autumn rainfall stays below average.
Farmers in the valley have already switched part of their acreage to less
water-intensive crops.</p>
</article>
</body>
</html>`

func testConfig() config.ScrapeConfig {
	return config.ScrapeConfig{
		MaxContentChars: 10000,
		MinContentChars: 50,
		// zero threshold keeps tests off the headless-browser path
		RenderThresholdChars: 0,
		TimeoutSeconds:       5,
	}
}

func TestScrapeExtractsArticleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	got, err := NewScraper(testConfig()).Scrape(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, got.Content, "lowest point in ten years")
	assert.False(t, got.Truncated)
	// whitespace runs are collapsed
	assert.NotContains(t, got.Content, "\n")
	assert.NotContains(t, got.Content, "  ")
}

func TestScrapeSendsBrowserHeaders(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	_, err := NewScraper(testConfig()).Scrape(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, ua, "Mozilla/5.0")
}

func TestScrapeTruncatesLongContent(t *testing.T) {
	long := "<html><body><article><h1>Long</h1><p>" +
		strings.Repeat("word ", 400) +
		"</p></article></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(long))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxContentChars = 120

	got, err := NewScraper(cfg).Scrape(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.True(t, got.Truncated)
	assert.True(t, strings.HasSuffix(got.Content, "..."))
	assert.Len(t, got.Content, 123)
}

func TestScrapeInvalidURL(t *testing.T) {
	s := NewScraper(testConfig())
	for _, raw := range []string{"", "not a url", "ftp://example.org/file", "javascript:alert(1)"} {
		_, err := s.Scrape(context.Background(), raw)
		var scrapeErr *ScrapeError
		require.ErrorAs(t, err, &scrapeErr, "url %q", raw)
		assert.Equal(t, http.StatusBadRequest, scrapeErr.StatusCode)
	}
}

func TestScrapeUpstreamStatusMapping(t *testing.T) {
	tests := []struct {
		upstream int
		want     int
	}{
		{http.StatusNotFound, http.StatusNotFound},
		{http.StatusForbidden, http.StatusForbidden},
		{http.StatusBadGateway, http.StatusInternalServerError},
		{http.StatusTooManyRequests, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.upstream)
		}))

		_, err := NewScraper(testConfig()).Scrape(context.Background(), srv.URL)
		srv.Close()

		var scrapeErr *ScrapeError
		require.ErrorAs(t, err, &scrapeErr, "upstream %d", tc.upstream)
		assert.Equal(t, tc.want, scrapeErr.StatusCode)
	}
}

func TestScrapeTooLittleContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><article><p>Too short.</p></article></body></html>"))
	}))
	defer srv.Close()

	_, err := NewScraper(testConfig()).Scrape(context.Background(), srv.URL)

	var scrapeErr *ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, http.StatusBadRequest, scrapeErr.StatusCode)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a\n\n b\t\tc "))
	assert.Equal(t, "", collapseWhitespace("   \n\t "))
}

func TestCutOnRuneKeepsMultibyteTextValid(t *testing.T) {
	assert.Equal(t, "abcdef", cutOnRune("abcdef", 10))
	assert.Equal(t, "abc", cutOnRune("abcdef", 3))

	// "héllo": cutting at byte 2 would land inside the two-byte é
	got := cutOnRune("héllo", 2)
	assert.Equal(t, "h", got)
	assert.True(t, utf8.ValidString(got))

	for i := 0; i <= len("résumé façade"); i++ {
		assert.True(t, utf8.ValidString(cutOnRune("résumé façade", i)), "cut at %d", i)
	}
}
