package instagram

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blacktop/hubcast/internal/logutil"
	"github.com/blacktop/hubcast/internal/social"
	"github.com/blacktop/hubcast/internal/social/rest"
)

const (
	envAccessToken = "INSTAGRAM_ACCESS_TOKEN"

	providerName   = "Instagram"
	defaultBaseURL = "https://graph.facebook.com"
	requestTimeout = 15 * time.Second
)

// Config holds the Instagram Graph API token.
type Config struct {
	AccessToken string
	BaseURL     string
}

// ConfigFromEnv reads the Instagram token from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{AccessToken: strings.TrimSpace(os.Getenv(envAccessToken))}
	if cfg.AccessToken == "" {
		return Config{}, social.MissingCredentialError{Provider: providerName, Variables: []string{envAccessToken}}
	}
	return cfg, nil
}

// Client implements the Poster interface for Instagram.
type Client struct {
	cfg  Config
	rest *rest.Client
}

// New constructs an Instagram poster from an injected credential set.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, rest: rest.New(requestTimeout)}
}

// Name returns the canonical provider name.
func (c *Client) Name() string { return providerName }

// Publish runs the two-step Graph API flow: create a media container for
// the image, then publish it. Instagram posts are media-centric, so a
// missing media URL fails before any network call.
func (c *Client) Publish(ctx context.Context, req social.Request) (any, error) {
	if req.MediaURL == "" {
		return nil, social.ValidationError{Provider: providerName, Reason: "Instagram requires an image or video"}
	}

	container := map[string]any{
		"image_url":    req.MediaURL,
		"caption":      req.Content,
		"access_token": c.cfg.AccessToken,
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := c.rest.PostJSON(ctx, providerName, c.cfg.BaseURL+"/me/media", nil, container, &created); err != nil {
		return nil, fmt.Errorf("create media container: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("create media container: no container id in response")
	}
	logutil.Debugf("instagram: media container created: id=%s", created.ID)

	publish := map[string]any{
		"creation_id":  created.ID,
		"access_token": c.cfg.AccessToken,
	}
	var out any
	if err := c.rest.PostJSON(ctx, providerName, c.cfg.BaseURL+"/me/media_publish", nil, publish, &out); err != nil {
		return nil, fmt.Errorf("publish media container: %w", err)
	}
	return out, nil
}
