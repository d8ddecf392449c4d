package social

import (
	"context"
	"errors"
)

// ErrMissingFields is returned when a publish request lacks one of the
// required fields. The message is part of the HTTP contract.
var ErrMissingFields = errors.New("Missing required fields: content, platforms, user_id")

// PublishRequest is the inbound payload: one piece of content and the list
// of platforms it should be fanned out to.
type PublishRequest struct {
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	UserID    string   `json:"user_id"`
	MediaURL  string   `json:"mediaUrl,omitempty"`
	Link      string   `json:"link,omitempty"`
	Hashtags  []string `json:"hashtags,omitempty"`
}

// Validate checks the required fields. Hashtag augmentation happens after
// validation, so content must be non-empty on its own.
func (r PublishRequest) Validate() error {
	if r.Content == "" || len(r.Platforms) == 0 || r.UserID == "" {
		return ErrMissingFields
	}
	return nil
}

// Request is the normalized payload handed to every adapter. Adapters that
// have no use for the media URL or link ignore them.
type Request struct {
	Content  string
	MediaURL string
	Link     string
}

// Poster abstracts a social network that can publish content.
type Poster interface {
	// Name returns the canonical display name, e.g. "Twitter".
	Name() string
	// Publish posts the request and returns the platform's success payload.
	Publish(ctx context.Context, req Request) (any, error)
}

// PlatformResult is the outcome for one platform within one dispatch.
// Exactly one of Data and Error is populated, agreeing with Success.
type PlatformResult struct {
	Platform string `json:"platform"`
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DispatchReport is the aggregated outcome of one publish request. Success
// means the dispatch ran; per-platform outcomes live in Results, in the same
// order as the request's platform list.
type DispatchReport struct {
	Success bool             `json:"success"`
	Results []PlatformResult `json:"results"`
	Message string           `json:"message"`
}
