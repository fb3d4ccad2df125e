// Package contentclient is a thin client for the content-service HTTP API.
//
// It knows nothing about users or auth; it fetches page text and vision
// findings for the API gateway to assemble.
//
// baseURL example: http://content_service:8001
package contentclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"veritas-ai/cmd/api/httpclient"
)

type Client struct {
	base *httpclient.BaseClient
}

func New() *Client {
	base := os.Getenv("CONTENT_SERVICE_BASE_URL")
	if base == "" {
		base = "http://content_service:8001"
	}

	return &Client{
		base: httpclient.NewBaseClient(base),
	}
}

// StatusError relays a content-service failure together with the HTTP
// status it answered with, so the gateway can pass both through.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// ScrapeResult mirrors the content-service scrape response.
type ScrapeResult struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
}

// Scrape calls POST /api/v1/scrape and returns the extracted page text.
func (c *Client) Scrape(ctx context.Context, pageURL string) (ScrapeResult, error) {
	body := struct {
		URL string `json:"url"`
	}{URL: pageURL}

	buf, err := json.Marshal(body)
	if err != nil {
		return ScrapeResult{}, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/api/v1/scrape", nil, bytes.NewReader(buf))
	if err != nil {
		return ScrapeResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return ScrapeResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ScrapeResult{}, statusError("Scrape", resp)
	}

	var out ScrapeResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ScrapeResult{}, err
	}
	return out, nil
}

// VisionAnalyze calls POST /api/v1/vision/analyze with the image bytes and
// returns the findings as raw JSON. The gateway sanitizes them before use;
// this client does not interpret the payload.
func (c *Client) VisionAnalyze(ctx context.Context, img []byte, mimeType string) (json.RawMessage, error) {
	body := struct {
		Image    string `json:"image"`
		MimeType string `json:"mimeType"`
	}{
		Image:    base64.StdEncoding.EncodeToString(img),
		MimeType: mimeType,
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/api/v1/vision/analyze", nil, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("VisionAnalyze", resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// Health calls the content-service /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return err
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("content-service Health: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

	var payload struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("content-service %s: status=%d body=%s", op, resp.StatusCode, string(body))
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}
