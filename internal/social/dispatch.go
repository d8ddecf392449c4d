package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/blacktop/hubcast/internal/logutil"
)

// canonicalNames maps lower-cased request identifiers (including aliases)
// to the canonical display name used in success results.
var canonicalNames = map[string]string{
	"twitter":   "Twitter",
	"x":         "Twitter",
	"facebook":  "Facebook",
	"instagram": "Instagram",
	"linkedin":  "LinkedIn",
	"pinterest": "Pinterest",
}

// Factory builds a Poster for one platform. Construction reads the
// platform's credentials, so a missing credential surfaces here as that
// platform's failure rather than a global one.
type Factory func() (Poster, error)

// Dispatcher fans one publish request out to the requested platforms and
// collects per-platform results. It holds no cross-request state.
type Dispatcher struct {
	factories map[string]Factory
	dryRun    bool
}

// NewDispatcher wires the orchestrator with one factory per canonical
// platform name. With dryRun set, no adapter is built and no network call
// is made; every supported platform reports a synthesized success.
func NewDispatcher(factories map[string]Factory, dryRun bool) *Dispatcher {
	return &Dispatcher{factories: factories, dryRun: dryRun}
}

// Dispatch validates the request, normalizes the content, and invokes the
// matching adapter for each requested platform in order. One platform's
// failure never stops the others; the returned report carries a result row
// per input platform in input order. The only error return is a structural
// validation failure, before anything is dispatched.
func (d *Dispatcher) Dispatch(ctx context.Context, req PublishRequest) (*DispatchReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	content := NormalizeContent(req.Content, req.Hashtags)
	logutil.Infof("dispatching publish request: user=%s platforms=%d", req.UserID, len(req.Platforms))

	results := make([]PlatformResult, 0, len(req.Platforms))
	succeeded := 0

	for _, raw := range req.Platforms {
		canonical, ok := canonicalNames[strings.ToLower(strings.TrimSpace(raw))]
		if !ok {
			results = append(results, PlatformResult{
				Platform: raw,
				Success:  false,
				Error:    fmt.Sprintf("Platform %s not supported or not configured", raw),
			})
			continue
		}

		if d.dryRun {
			logutil.Infof("[dry-run] would post to %s: %q", canonical, content)
			results = append(results, PlatformResult{
				Platform: canonical,
				Success:  true,
				Data:     map[string]any{"dry_run": true},
			})
			succeeded++
			continue
		}

		factory, ok := d.factories[canonical]
		if !ok {
			results = append(results, PlatformResult{
				Platform: raw,
				Success:  false,
				Error:    fmt.Sprintf("Platform %s not supported or not configured", raw),
			})
			continue
		}

		poster, err := factory()
		if err != nil {
			logutil.Errorf("configure %s: %v", canonical, err)
			results = append(results, PlatformResult{Platform: raw, Success: false, Error: err.Error()})
			continue
		}

		data, err := poster.Publish(ctx, Request{Content: content, MediaURL: req.MediaURL, Link: req.Link})
		if err != nil {
			logutil.Errorf("post to %s failed: %v", canonical, err)
			results = append(results, PlatformResult{Platform: raw, Success: false, Error: err.Error()})
			continue
		}

		logutil.Infof("posted to %s", canonical)
		results = append(results, PlatformResult{Platform: canonical, Success: true, Data: data})
		succeeded++
	}

	return &DispatchReport{
		Success: true,
		Results: results,
		Message: fmt.Sprintf("Posted to %d out of %d platforms", succeeded, len(req.Platforms)),
	}, nil
}
