package twitter

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/blacktop/hubcast/internal/logutil"
	"github.com/blacktop/hubcast/internal/social"
	"github.com/blacktop/hubcast/internal/social/oauth1"
	"github.com/blacktop/hubcast/internal/social/rest"
)

const (
	envAPIKey       = "TWITTER_API_KEY"
	envAPISecret    = "TWITTER_API_SECRET"
	envAccessToken  = "TWITTER_ACCESS_TOKEN"
	envAccessSecret = "TWITTER_ACCESS_TOKEN_SECRET"

	providerName   = "Twitter"
	defaultBaseURL = "https://api.twitter.com"
	requestTimeout = 15 * time.Second
)

// Config captures the credentials required for OAuth 1.0a user-context
// requests. BaseURL is overridable for tests.
type Config struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
	BaseURL      string
}

// ConfigFromEnv reads the four Twitter credentials from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:       strings.TrimSpace(os.Getenv(envAPIKey)),
		APISecret:    strings.TrimSpace(os.Getenv(envAPISecret)),
		AccessToken:  strings.TrimSpace(os.Getenv(envAccessToken)),
		AccessSecret: strings.TrimSpace(os.Getenv(envAccessSecret)),
	}

	var missing []string
	if cfg.APIKey == "" {
		missing = append(missing, envAPIKey)
	}
	if cfg.APISecret == "" {
		missing = append(missing, envAPISecret)
	}
	if cfg.AccessToken == "" {
		missing = append(missing, envAccessToken)
	}
	if cfg.AccessSecret == "" {
		missing = append(missing, envAccessSecret)
	}

	if len(missing) > 0 {
		return Config{}, social.MissingCredentialError{Provider: providerName, Variables: missing}
	}

	return cfg, nil
}

// Client implements the Poster interface for X (Twitter).
type Client struct {
	cfg    Config
	rest   *rest.Client
	signer *oauth1.Signer
}

// New constructs a Twitter poster from an injected credential set.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:  cfg,
		rest: rest.New(requestTimeout),
		signer: &oauth1.Signer{
			ConsumerKey:    cfg.APIKey,
			ConsumerSecret: cfg.APISecret,
			AccessToken:    cfg.AccessToken,
			AccessSecret:   cfg.AccessSecret,
		},
	}
}

// Name returns the canonical provider name.
func (c *Client) Name() string { return providerName }

// Publish posts a tweet via the v2 API with an OAuth 1.0a signed request.
// A media URL is logged but not attached: attaching media requires a
// separate upload call against the v1.1 media endpoint first.
func (c *Client) Publish(ctx context.Context, req social.Request) (any, error) {
	if req.MediaURL != "" {
		logutil.Debugf("twitter: media attachment not supported, ignoring %s", req.MediaURL)
	}

	text := req.Content
	if req.Link != "" {
		text += " " + req.Link
	}

	endpoint := c.cfg.BaseURL + "/2/tweets"
	headers := map[string]string{
		"Authorization": c.signer.AuthorizationHeader("POST", endpoint),
	}

	var out any
	if err := c.rest.PostJSON(ctx, providerName, endpoint, headers, map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
