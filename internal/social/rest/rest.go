// Package rest is a minimal JSON-over-HTTP client shared by the platform
// adapters. Non-2xx responses surface as social.UpstreamError carrying the
// upstream status code and body.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blacktop/hubcast/internal/social"
)

// Client wraps an http.Client with a request timeout.
type Client struct {
	httpClient *http.Client
}

// New returns a client whose requests time out after the given duration.
func New(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// PostJSON sends a JSON body and decodes the JSON response into result.
func (c *Client) PostJSON(ctx context.Context, provider, url string, headers map[string]string, body, result any) error {
	return c.do(ctx, http.MethodPost, provider, url, headers, body, result)
}

// GetJSON sends a GET request and decodes the JSON response into result.
func (c *Client) GetJSON(ctx context.Context, provider, url string, headers map[string]string, result any) error {
	return c.do(ctx, http.MethodGet, provider, url, headers, nil, result)
}

func (c *Client) do(ctx context.Context, method, provider, url string, headers map[string]string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", provider, err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", provider, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", provider, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return social.UpstreamError{Provider: provider, StatusCode: resp.StatusCode, Body: string(data)}
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode %s response: %w", provider, err)
		}
	}
	return nil
}
