package feeder

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Wire Headlines</title>
<item>
  <title>Coastal flooding displaces hundreds</title>
  <link>https://wire.example/stories/1</link>
  <description>Rising tides forced evacuations overnight.</description>
  <pubDate>Thu, 27 Aug 2026 08:00:00 GMT</pubDate>
</item>
<item>
  <title>Election officials dismiss viral ballot claim</title>
  <link>https://wire.example/stories/2</link>
  <description>A widely shared video was recorded in 2019.</description>
  <pubDate>Thu, 27 Aug 2026 07:30:00 GMT</pubDate>
</item>
<item>
  <title>Markets steady after rate decision</title>
  <link>https://wire.example/stories/3</link>
  <description>Analysts expected the hold.</description>
  <pubDate>Thu, 27 Aug 2026 07:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func TestFetchRssFeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	items, err := FetchRssFeeds(srv.URL, 0)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Coastal flooding displaces hundreds", items[0].Title)
	assert.Equal(t, "https://wire.example/stories/1", items[0].Link)
	assert.Equal(t, "Rising tides forced evacuations overnight.", items[0].Description)
	assert.False(t, items[0].PublishedAt.IsZero())
}

func TestFetchRssFeedsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	items, err := FetchRssFeeds(srv.URL, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
