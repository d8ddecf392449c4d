package pinterest

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/blacktop/hubcast/internal/social"
	"github.com/blacktop/hubcast/internal/social/rest"
)

const (
	envAccessToken = "PINTEREST_ACCESS_TOKEN"
	envBoardID     = "PINTEREST_BOARD_ID"

	providerName   = "Pinterest"
	defaultBaseURL = "https://api.pinterest.com"
	requestTimeout = 15 * time.Second
)

// Config holds the Pinterest bearer token and target board.
type Config struct {
	AccessToken string
	BoardID     string
	BaseURL     string
}

// ConfigFromEnv reads the Pinterest token and board id from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		AccessToken: strings.TrimSpace(os.Getenv(envAccessToken)),
		BoardID:     strings.TrimSpace(os.Getenv(envBoardID)),
	}

	var missing []string
	if cfg.AccessToken == "" {
		missing = append(missing, envAccessToken)
	}
	if cfg.BoardID == "" {
		missing = append(missing, envBoardID)
	}

	if len(missing) > 0 {
		return Config{}, social.MissingCredentialError{Provider: providerName, Variables: missing}
	}

	return cfg, nil
}

// Client implements the Poster interface for Pinterest.
type Client struct {
	cfg  Config
	rest *rest.Client
}

// New constructs a Pinterest poster from an injected credential set.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, rest: rest.New(requestTimeout)}
}

// Name returns the canonical provider name.
func (c *Client) Name() string { return providerName }

// Publish creates a pin on the configured board. Pins are image-centric, so
// a missing media URL fails before any network call.
func (c *Client) Publish(ctx context.Context, req social.Request) (any, error) {
	if req.MediaURL == "" {
		return nil, social.ValidationError{Provider: providerName, Reason: "Pinterest requires an image"}
	}

	payload := map[string]any{
		"board_id": c.cfg.BoardID,
		"media_source": map[string]any{
			"source_type": "image_url",
			"url":         req.MediaURL,
		},
		"description": req.Content,
	}
	if req.Link != "" {
		payload["link"] = req.Link
	}

	headers := map[string]string{"Authorization": "Bearer " + c.cfg.AccessToken}

	var out any
	if err := c.rest.PostJSON(ctx, providerName, c.cfg.BaseURL+"/v5/pins", headers, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
