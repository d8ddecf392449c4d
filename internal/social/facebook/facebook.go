package facebook

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/blacktop/hubcast/internal/social"
	"github.com/blacktop/hubcast/internal/social/rest"
)

const (
	envAccessToken = "FACEBOOK_ACCESS_TOKEN"

	providerName   = "Facebook"
	defaultBaseURL = "https://graph.facebook.com"
	requestTimeout = 15 * time.Second
)

// Config holds the page access token for Graph API feed posts.
type Config struct {
	AccessToken string
	BaseURL     string
}

// ConfigFromEnv reads the Facebook page token from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{AccessToken: strings.TrimSpace(os.Getenv(envAccessToken))}
	if cfg.AccessToken == "" {
		return Config{}, social.MissingCredentialError{Provider: providerName, Variables: []string{envAccessToken}}
	}
	return cfg, nil
}

// Client implements the Poster interface for Facebook.
type Client struct {
	cfg  Config
	rest *rest.Client
}

// New constructs a Facebook poster from an injected credential set.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, rest: rest.New(requestTimeout)}
}

// Name returns the canonical provider name.
func (c *Client) Name() string { return providerName }

// Publish posts to the caller's feed via the Graph API.
func (c *Client) Publish(ctx context.Context, req social.Request) (any, error) {
	payload := map[string]any{
		"message":      req.Content,
		"access_token": c.cfg.AccessToken,
	}
	if req.Link != "" {
		payload["link"] = req.Link
	}
	if req.MediaURL != "" {
		payload["picture"] = req.MediaURL
	}

	var out any
	if err := c.rest.PostJSON(ctx, providerName, c.cfg.BaseURL+"/me/feed", nil, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
