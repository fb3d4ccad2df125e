// Package vision runs reverse image search through the Cloud Vision API and
// scores how likely an image is machine-generated from where it appears on
// the web.
package vision

import (
	"context"
	"fmt"
	"os"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"veritas-ai/logger"
	"veritas-ai/models"
)

type Client struct {
	annotator *vision.ImageAnnotatorClient
}

// NewClient builds a Vision API client. Credentials come from
// GOOGLE_APPLICATION_CREDENTIALS or the ambient service account.
func NewClient(ctx context.Context) (*Client, error) {
	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	annotator, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &Client{annotator: annotator}, nil
}

func (c *Client) Close() error {
	if c == nil || c.annotator == nil {
		return nil
	}
	return c.annotator.Close()
}

// Analyze submits the image for web detection and safe search, then reduces
// the annotations to findings.
func (c *Client) Analyze(ctx context.Context, img []byte) (models.VisionFindings, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: img},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_WEB_DETECTION, MaxResults: 20},
					{Type: visionpb.Feature_SAFE_SEARCH_DETECTION},
				},
			},
		},
	}

	resp, err := c.annotator.BatchAnnotateImages(ctx, req)
	if err != nil {
		return models.VisionFindings{}, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return models.VisionFindings{}, fmt.Errorf("vision returned an empty response")
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return models.VisionFindings{}, fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}

	findings := reduceAnnotations(r0.WebDetection, r0.SafeSearchAnnotation)
	logger.DebugWithFields("vision analysis complete", logger.Fields{
		"ai_score": findings.AIScore,
		"verdict":  findings.Verdict,
	})
	return findings, nil
}
