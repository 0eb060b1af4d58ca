package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ErrExtractionFailed is returned when the extractor cannot produce a result.
var ErrExtractionFailed = errors.New("could not extract data from the receipt")

// Extractor reads a receipt image and returns whatever it could recognise.
type Extractor interface {
	Extract(ctx context.Context, imageURL string) (*Extraction, error)
}

// Ensure Client implements Extractor
var _ Extractor = (*Client)(nil)

// Client calls a remote extraction endpoint over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the given endpoint. A zero timeout means no
// client-side limit beyond the request context.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type extractRequest struct {
	BillURL string `json:"billUrl"`
}

// Extract posts the image URL to the endpoint and decodes the extraction.
func (c *Client) Extract(ctx context.Context, imageURL string) (*Extraction, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("%w: image url required", ErrExtractionFailed)
	}

	body, err := json.Marshal(extractRequest{BillURL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	slog.Debug("Receipt extractor responded",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrExtractionFailed, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out Extraction
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrExtractionFailed, err)
	}
	return &out, nil
}
