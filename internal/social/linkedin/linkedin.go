package linkedin

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
	envAccessToken = "LINKEDIN_ACCESS_TOKEN"

	providerName   = "LinkedIn"
	defaultBaseURL = "https://api.linkedin.com"
	requestTimeout = 15 * time.Second
)

// Config holds the LinkedIn bearer token.
type Config struct {
	AccessToken string
	BaseURL     string
}

// ConfigFromEnv reads the LinkedIn token from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{AccessToken: strings.TrimSpace(os.Getenv(envAccessToken))}
	if cfg.AccessToken == "" {
		return Config{}, social.MissingCredentialError{Provider: providerName, Variables: []string{envAccessToken}}
	}
	return cfg, nil
}

// Client implements the Poster interface for LinkedIn.
type Client struct {
	cfg  Config
	rest *rest.Client
}

// New constructs a LinkedIn poster from an injected credential set.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg, rest: rest.New(requestTimeout)}
}

// Name returns the canonical provider name.
func (c *Client) Name() string { return providerName }

// Publish resolves the caller's person URN, builds a UGC post payload, and
// posts it. A media URL or link turns the share into an ARTICLE with a
// single attached media entry; otherwise the share carries text only.
func (c *Client) Publish(ctx context.Context, req social.Request) (any, error) {
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.AccessToken}

	var profile struct {
		ID string `json:"id"`
	}
	if err := c.rest.GetJSON(ctx, providerName, c.cfg.BaseURL+"/v2/people/(id~)", headers, &profile); err != nil {
		return nil, fmt.Errorf("resolve person urn: %w", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("resolve person urn: no id in profile response")
	}
	logutil.Debugf("linkedin: resolved person urn: id=%s", profile.ID)

	shareContent := map[string]any{
		"shareCommentary":    map[string]any{"text": req.Content},
		"shareMediaCategory": "NONE",
	}
	if req.MediaURL != "" || req.Link != "" {
		originalURL := req.Link
		if originalURL == "" {
			originalURL = req.MediaURL
		}
		shareContent["shareMediaCategory"] = "ARTICLE"
		shareContent["media"] = []map[string]any{{
			"status":      "READY",
			"description": map[string]any{"text": req.Content},
			"originalUrl": originalURL,
			"title":       map[string]any{"text": "Shared Content"},
		}}
	}

	payload := map[string]any{
		"author":         "urn:li:person:" + profile.ID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": shareContent,
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	var out any
	if err := c.rest.PostJSON(ctx, providerName, c.cfg.BaseURL+"/v2/ugcPosts", headers, payload, &out); err != nil {
		return nil, fmt.Errorf("create ugc post: %w", err)
	}
	return out, nil
}
